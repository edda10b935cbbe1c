package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

var lineSeeds = []string{
	`instance 0x1 application: Top`,
	`instance 0x2 Top: RTSupertype {"thread":"main"}`,
	`instance 0x3 application.b[2].c: TypeX`,
	`0x1 A.p[1] -> 0x3 B: ping(x){"time2_receive":10,"time3_handle":12}`,
	`0x1 A -> 0x2 B: e(a(b)c) {"x":`,
	`0x1 A -> 0x2 B: e(unclosed`,
	`note "a\tbé" {"time": 3}`,
	`note "unterminated`,
	`// {`,
	`// "trace": {"application":"Demo"}`,
	`// }`,
	`0x1 A -> 0x2 B: e() // trailing`,
	`@@@ 18446744073709551616`,
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range lineSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every *.trace file found under the packages'
// testdata directories.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..")
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".trace" {
			return nil
		}
		// #nosec G304 -- path comes from a walk of the repository
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
