// Package input reads host commands from the terminal. Single-letter
// commands fire immediately without Enter; anything else is collected as a
// line so multi-word commands like "size 40 20" still work.
package input

import (
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"
)

// immediateKeys are single-key commands returned without waiting for Enter.
const immediateKeys = "sgrdq"

// readByte reads a single byte from stdin in raw mode
func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// discardEscapeSequence consumes the remainder of an ANSI escape sequence
// (arrow keys and similar) so it does not leak into line input.
func discardEscapeSequence() {
	b2, err := readByte()
	if err != nil {
		return
	}
	if b2 == '[' || b2 == 'O' {
		readByte()
	}
}

// GetCommand reads one host command. Keys in immediateKeys return at once;
// other printable input is collected until Enter.
func GetCommand() string {
	// Put terminal into raw mode to detect single keypresses
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		log.Fatalf("Cannot set terminal to raw mode: %v", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	b1, err := readByte()
	if err != nil {
		log.Fatalf("Cannot read stdin: %v", err)
		return ""
	}

	// Handle Ctrl+C
	if b1 == 3 {
		term.Restore(int(os.Stdin.Fd()), oldState)
		fmt.Println()
		os.Exit(0)
	}

	if b1 == 0x1b {
		discardEscapeSequence()
		return ""
	}

	if strings.ContainsRune(immediateKeys, rune(b1)) {
		fmt.Println(string(b1))
		return string(b1)
	}

	// Handle newline/enter - just return empty
	if b1 == '\n' || b1 == '\r' {
		return ""
	}

	// For regular characters, collect input until Enter
	var collected []byte
	if b1 >= 32 && b1 < 127 {
		collected = append(collected, b1)
		fmt.Print(string(b1)) // Echo the character
	}

	for {
		b, err := readByte()
		if err != nil {
			break
		}

		// Arrow keys pressed during text entry are discarded
		if b == 0x1b {
			discardEscapeSequence()
			continue
		}

		// Handle backspace
		if b == 127 || b == 8 {
			if len(collected) > 0 {
				collected = collected[:len(collected)-1]
				fmt.Print("\b \b") // Erase character from display
			}
			continue
		}

		// Handle Enter
		if b == '\n' || b == '\r' {
			fmt.Println()
			break
		}

		// Handle Ctrl+C
		if b == 3 {
			term.Restore(int(os.Stdin.Fd()), oldState)
			fmt.Println()
			os.Exit(0)
		}

		// Only add printable characters
		if b >= 32 && b < 127 {
			collected = append(collected, b)
			fmt.Print(string(b)) // Echo the character
		}
	}

	return string(collected)
}
