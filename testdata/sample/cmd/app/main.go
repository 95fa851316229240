package main

import "fmt"

// #debt: replace hand-rolled flag parsing
func main() {
	// #todo: graceful shutdown
	fmt.Println("sample")
}
