package adapters

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"devkit-builder/internal/ports"
	"devkit-builder/internal/types"
)

// NmSymbolTableAdapter lists archive symbols with nm in POSIX format.
type NmSymbolTableAdapter struct {
	Runner ports.ToolRunnerPort
	Binary string
}

func NewNmSymbolTableAdapter(runner ports.ToolRunnerPort, binary string) NmSymbolTableAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = types.DefaultToolchain().NM
	}
	return NmSymbolTableAdapter{Runner: runner, Binary: binary}
}

func (a NmSymbolTableAdapter) ReadSymbols(ctx context.Context, archive string) ([]types.SymbolEntry, error) {
	output, err := a.Runner.Run(ctx, types.ToolInvocation{Tool: a.Binary, Args: []string{"-P", archive}})
	if err != nil {
		return nil, err
	}
	return ParsePosixSymbols(output), nil
}

// ParsePosixSymbols reads `nm -P` output. Member headers ("lib.a[x.o]:")
// and blank lines are skipped.
func ParsePosixSymbols(output []byte) []types.SymbolEntry {
	var entries []types.SymbolEntry
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || len(fields[1]) != 1 {
			continue
		}
		entries = append(entries, types.SymbolEntry{
			Name: fields[0],
			Kind: symbolKindForLetter(fields[1][0]),
		})
	}
	return entries
}

func symbolKindForLetter(letter byte) types.SymbolKind {
	switch letter {
	case 'T', 'i':
		// i: GNU indirect function.
		return types.SymbolKindText
	case 'D', 'G', 'u':
		// u: GNU unique global.
		return types.SymbolKindData
	case 'B', 'S':
		return types.SymbolKindBSS
	case 'R':
		return types.SymbolKindReadOnly
	case 'C':
		return types.SymbolKindCommon
	case 'U':
		return types.SymbolKindUndefined
	case 'V', 'W', 'v', 'w':
		return types.SymbolKindWeak
	}
	if letter >= 'a' && letter <= 'z' {
		return types.SymbolKindLocal
	}
	return types.SymbolKindOther
}

var _ ports.SymbolTablePort = NmSymbolTableAdapter{}
