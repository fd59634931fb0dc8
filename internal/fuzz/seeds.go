package fuzztests

import (
	"testing"
)

const (
	maxFuzzInput = 1 << 16 // 64 KiB
)

// scriptSeeds covers each statement form the walker understands plus the
// broken prefixes an editor typically sends mid-keystroke.
var scriptSeeds = []string{
	"",
	"x = 1\n",
	"import java.util as u\nfrom os.path import join, sep as s\n",
	"from helpers import *\n",
	"def f(a, b):\n    return a\n",
	"class A(object):\n    def __init__(self, n):\n        self.n = n\n    def get(self):\n        return self.n\n",
	"class B:\n    @staticmethod\n    def make():\n        return B()\n",
	"if x:\n    y = 'a'\nelse:\n    y = 2.0\n",
	"for i, j in pairs:\n    pass\n",
	"try:\n    pass\nexcept IOError, e:\n    pass\nfinally:\n    pass\n",
	"with open('f') as fh:\n    data = fh\n",
	"a, b = 1, 'x'\n",
	"a.b.c = [1, 2]\n",
	"x = (\n",
	"def broken(:\n",
	"class C:\n",
	"s = 'unterminated\n",
	"\tx = 1\n  y = 2\n",
	"x = [1, {2: (3,)}]\n",
	"print x\n",
	"lambda x: x\n",
}

func addSeeds(f *testing.F) {
	for _, s := range scriptSeeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
