package main

import (
	"github.com/mcoot/quickdrawgame-go/internal/cli"
)

func main() {
	cli.Execute()
}
