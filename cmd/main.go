package main

import (
	"fmt"

	"github.com/ostafen/tagkit/cmd/cmd"
	"github.com/ostafen/tagkit/internal/env"
)

func main() {
	PrintLogo()

	_ = cmd.Execute()
}

func PrintLogo() {
	fmt.Println(" _              _    _ _   ")
	fmt.Println("| |_ __ _  __ _| | _(_) |_ ")
	fmt.Println("| __/ _` |/ _` | |/ / | __|")
	fmt.Println("| || (_| | (_| |   <| | |_ ")
	fmt.Println(" \\__\\__,_|\\__, |_|\\_\\_|\\__|")
	fmt.Println("          |___/            ")
	fmt.Println()
	fmt.Println("Media file-format identification toolkit")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
