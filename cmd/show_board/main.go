package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show")
	flag.Parse()

	board, err := othello.NewBoardFromString(*boardString)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	board.Print()

	fmt.Printf("%s to move, %d black, %d white, legal moves: %v\n",
		board.Mover(), board.BlackCount(), board.WhiteCount(), board.LegalMoves())
}
