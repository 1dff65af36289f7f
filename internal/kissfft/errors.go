package kissfft

import "errors"

var (
	errInvalidNFFT    = errors.New("kissfft: nfft out of range")
	errTooManyStages  = errors.New("kissfft: factorization exceeds MaxStages")
	errRadixTooLarge  = errors.New("kissfft: stage radix exceeds MaxRadix")
)
