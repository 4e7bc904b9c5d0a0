package main

import "batchelor/internal/batchelor"

func main() {
	batchelor.ParseCmdArgs()
}
