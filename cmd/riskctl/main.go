package main

import (
	"os"

	"github.com/MikhailONe12/App-Risk-Manager/cmd/riskctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
