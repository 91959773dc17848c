package main

import (
	"log"
	"os"
)

func helper() {
	os.Exit(1)
	log.Fatal("allowed outside main")
}

func main() {
	helper()
	os.Exit(0)                 // want "avoid using os.Exit in main.main"
	log.Fatal("stop")          // want "avoid using log.Fatal in main.main"
	log.Fatalf("stop %d", 1)   // want "avoid using log.Fatalf in main.main"
	log.Fatalln("stop")        // want "avoid using log.Fatalln in main.main"
	log.Println("still fine")
	func() {
		os.Exit(2) // want "avoid using os.Exit in main.main"
	}()
}
