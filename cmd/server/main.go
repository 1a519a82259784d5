package main

import "github.com/Bbmxzz/see2hear/internal/bootstrap"

func main() {
	bootstrap.Run()
}
