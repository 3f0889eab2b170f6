package boxcheck_test

import (
	"testing"

	"github.com/ruudy-sib/boxcheck/pkg/boxcheck"
)

func BenchmarkIsValid(b *testing.B) {
	inputs := []string{"MSCU6639870", "mscu 663 987 0", "TEMU9876543", "MSCUX663987"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		boxcheck.IsValid(inputs[i%len(inputs)])
	}
}

func BenchmarkCheckDigit(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := boxcheck.CheckDigit("CSQU305438"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNormalize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		boxcheck.Normalize(" mscu 663 987 0 ")
	}
}
