package main

import (
	"context"
	"os"

	"github.com/jon4hz/attendance/cmd"
)

var version = "dev"

func main() {
	if err := cmd.Execute(context.Background(), version); err != nil {
		os.Exit(1)
	}
}
