package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// I/O
	IOInfo          Code = 1000
	IOLoadFileError Code = 1001
	IOWriteError    Code = 1002

	// Синтаксис (python)
	SynInfo          Code = 2000
	SynSyntaxError   Code = 2001
	SynMissingToken  Code = 2002
	SynUnsupportedFS Code = 2003

	// Сканер
	ScanInfo            Code = 3000
	ScanInvalidSeverity Code = 3001
	ScanRootError       Code = 3002
	ScanEmptyLevel      Code = 3003
	ScanMalformedCall   Code = 3004

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		IOInfo:              "I/O information",
		IOLoadFileError:     "I/O load file error",
		IOWriteError:        "I/O write error",
		SynInfo:             "Syntax information",
		SynSyntaxError:      "Syntax error",
		SynMissingToken:     "Missing token",
		SynUnsupportedFS:    "Unsupported file",
		ScanInfo:            "Scanner information",
		ScanInvalidSeverity: "Invalid severity",
		ScanRootError:       "Scan root error",
		ScanEmptyLevel:      "No call sites for severity",
		ScanMalformedCall:   "Malformed call site",
		ObsInfo:             "Observability information",
		ObsTimings:          "Pipeline timings",
	}
)

// ID returns the stable short identifier, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
