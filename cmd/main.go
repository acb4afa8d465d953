package main

import (
	"os"

	"github.com/hodordarius5/Proiect-2-MIP-ChimieQuiz/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
