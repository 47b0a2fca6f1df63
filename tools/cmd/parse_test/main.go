package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hdstats/pkg/ocr"
	"hdstats/pkg/statparse"
)

// Debug helper: run the OCR passes and the stat parser over one file and dump
// every recovered stat with its confidence. Accepts an image or a plain .txt
// transcription.
func main() {
	p := "public/shots/card.png"
	if len(os.Args) > 1 {
		p = os.Args[1]
	}

	var text string
	var err error
	if strings.EqualFold(filepath.Ext(p), ".txt") {
		var b []byte
		b, err = os.ReadFile(p)
		text = string(b)
	} else {
		text, err = ocr.ExtractText(p)
	}
	if err != nil {
		fmt.Printf("transcribe %s: %v\n", p, err)
		os.Exit(1)
	}

	res := statparse.Parse(text)
	fmt.Printf("player_name=%q stats=%d\n", res.PlayerName, len(res.Stats))
	for _, key := range statparse.AllStatKeys {
		v, ok := res.Stats[key]
		if !ok {
			fmt.Printf("%-28s -\n", key)
			continue
		}
		fmt.Printf("%-28s %d (%s)\n", key, v, res.Confidence[key])
	}
}
