// Command slabctl exercises the slabkit allocator.
package main

func main() {
	execute()
}
