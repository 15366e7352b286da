package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var pythonSeeds = []string{
	"",
	"logger.info(\"hello {} world\", name)\n",
	"logger.error(f\"failed {x}\", *args, **kw)\n",
	"logger.warning(\n    \"a\"\n    \"b\",\n    value,\n)\n",
	"logger.debug(\"\"\"multi\nline\"\"\")\n",
	"logger.info(b\"raw\\x00\")\n",
	"logger.critical((\"paren\"), [1, 2], {\"k\": v}, lambda: 0)\n",
	"logger.info(msg) ; logger.info(\"same line\")\n",
	"def (:\n",
	"logger.info(\"unterminated\n",
	"logger.info(x for x in y)\n",
	"class A:\n    def f(self):\n        logger.exception(\"boom %s\", self.id)\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range pythonSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
