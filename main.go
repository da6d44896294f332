package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/siegeai/cloudmock/cli"
	"github.com/siegeai/cloudmock/config"
)

func main() {
	config.LoadDotEnv()

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
