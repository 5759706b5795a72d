package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdinReader *bufio.Reader

// GetInput reads a line of input from stdin
func GetInput() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// readByte reads a single byte from stdin in raw mode
func readByte() (byte, error) {
	buf := make([]byte, 1)
	_, err := os.Stdin.Read(buf)
	return buf[0], err
}

// decodeKey turns the first byte of a key press, plus whatever escape
// sequence follows it, into a code. next is only called for escape sequences.
func decodeKey(first byte, next func() (byte, error)) string {
	switch first {
	case 3:
		return "quit"
	case '\r', '\n':
		return "enter"
	case 0x1b:
	default:
		if first >= 32 && first < 127 {
			return strings.ToLower(string(first))
		}
		return ""
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	b2, err := next()
	if err != nil {
		return "escape"
	}
	if b2 != '[' && b2 != 'O' {
		return "escape"
	}
	b3, err := next()
	if err != nil {
		return "escape"
	}
	switch b3 {
	case 'A':
		return "arrow_up"
	case 'B':
		return "arrow_down"
	case 'C':
		return "arrow_right"
	case 'D':
		return "arrow_left"
	}
	return ""
}

// ReadKey waits for one key press and returns its code. When stdin is not a
// terminal it falls back to reading a line; an empty line reads as "enter".
func ReadKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := GetInput()
		if err != nil {
			return "", err
		}
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			return "enter", nil
		}
		return line, nil
	}

	// Reset the buffered reader to avoid conflicts with raw mode
	stdinReader = nil

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("cannot set terminal to raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	b1, err := readByte()
	if err != nil {
		return "", fmt.Errorf("cannot read stdin: %w", err)
	}
	return decodeKey(b1, readByte), nil
}

// ReadIntent waits for one key press on the terminal and maps it
func ReadIntent() (Intent, error) {
	code, err := ReadKey()
	if err != nil {
		return Intent{}, err
	}
	raw := RawInput{Device: DeviceTerminal, Code: code}
	return MapToIntent(NewDebouncedInput(raw)), nil
}
