package main

import "github.com/babsant/clean-sanctuary/cmd/sanctuary/root"

func main() {
	root.Execute()
}
