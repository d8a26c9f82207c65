package util

import (
	"bufio"
	"io"
	"os"
)

// Read returns the contents of fileName
func Read(fileName string) ([]byte, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Write creates or truncates fileName and writes buf to it
func Write(buf []byte, fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	n := 0
	for n < len(buf) {
		m, err := f.Write(buf[n:])
		if err != nil {
			f.Close()
			return err
		}
		n += m
	}
	return f.Close()
}
