package vos

import "fmt"

func ExampleNewEnvFromList() {
	env := NewEnvFromList([]string{"C=D", "A=B", "E", "F=G=H", "A=overwritten"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=overwritten" "C=D" "E=" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleEnv_Unsetenv() {
	env := NewEnv()
	env.Setenv("A", "B")
	env.Setenv("C", "D")

	fmt.Println("Before:", env.Environ())
	env.Unsetenv("A")
	fmt.Println("After:", env.Environ())

	// Output: Before: [A=B C=D]
	// After: [C=D]
}

func ExampleEnv_LookupEnv() {
	env := NewEnv()
	env.Setenv("A", "")

	val, ok := env.LookupEnv("A")
	fmt.Printf("Empty val: %q ok: %v\n", val, ok)
	val, ok = env.LookupEnv("B")
	fmt.Printf("Missing val: %q ok: %v\n", val, ok)

	// Output: Empty val: "" ok: true
	// Missing val: "" ok: false
}
