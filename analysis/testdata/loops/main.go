package main

import "fmt"

func count(words []string, w string) int {
	n := 0
	for _, x := range words {
		if x == w {
			n++
		}
	}
	return n
}

func main() {
	fmt.Println(count([]string{"a", "b", "a"}, "a"))
}
