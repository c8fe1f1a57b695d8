package main

import "os"

func main() {
	// cobra already printed "Error: ..."
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
