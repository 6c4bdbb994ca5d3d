/*
Copyright © 2025 Oleg Shokin

This file is the entry point for the cnn-classifier command line.
It initializes and executes the root command defined in the cmd package.
*/
package main

import "github.com/oshokin/cnn-classifier/cmd"

// main is the entry point of the application.
func main() {
	cmd.Execute()
}
