package kissfft

// Transform computes the (unnormalized) DFT or IDFT of src into dst
// according to p.Inverse. src and dst must both have length p.NFFT and must
// not overlap. Neither argument is retained after the call returns, and no
// allocation occurs on this path.
func (p *Plan) Transform(dst, src []complex128) {
	p.work(0, dst, src, 1, 1)
}

// work performs the Cooley-Tukey decimation-in-time recursion described in
// the plan's stage table: a stage of radix q and remainder m is built from
// q sub-transforms of length m, recombined by a radix-q butterfly.
func (p *Plan) work(stage int, fout, f []complex128, fstride, inStride int) {
	q := p.StageRadix[stage]
	m := p.StageRemnant[stage]
	foutBeg := 0
	foutEnd := q * m

	if m == 1 {
		fi := 0
		for foutIdx := foutBeg; foutIdx != foutEnd; foutIdx++ {
			fout[foutIdx] = f[fi]
			fi += fstride * inStride
		}
	} else {
		fi := 0
		foutIdx := foutBeg
		for {
			p.work(stage+1, fout[foutIdx:], f[fi:], fstride*q, inStride)
			fi += fstride * inStride
			foutIdx += m
			if foutIdx == foutEnd {
				break
			}
		}
	}

	sub := fout[foutBeg:foutEnd]
	switch q {
	case 2:
		p.bfly2(sub, fstride, m)
	case 3:
		p.bfly3(sub, fstride, m)
	case 4:
		p.bfly4(sub, fstride, m)
	case 5:
		p.bfly5(sub, fstride, m)
	default:
		p.bflyGeneric(sub, fstride, m, q)
	}
}

func (p *Plan) bfly2(fout []complex128, fstride, m int) {
	for k := 0; k < m; k++ {
		t := fout[m+k] * p.Twiddles[k*fstride]
		fout[m+k] = fout[k] - t
		fout[k] += t
	}
}

func (p *Plan) bfly4(fout []complex128, fstride, m int) {
	negIfInverse := 1.0
	if p.Inverse {
		negIfInverse = -1.0
	}
	var s0, s1, s2, s3, s4, s5 complex128
	for k := 0; k < m; k++ {
		s0 = fout[k+m] * p.Twiddles[k*fstride]
		s1 = fout[k+2*m] * p.Twiddles[k*fstride*2]
		s2 = fout[k+3*m] * p.Twiddles[k*fstride*3]
		s5 = fout[k] - s1

		fout[k] += s1
		s3 = s0 + s2
		s4 = s0 - s2
		s4 = complex(imag(s4)*negIfInverse, -real(s4)*negIfInverse)

		fout[k+2*m] = fout[k] - s3
		fout[k] += s3
		fout[k+m] = s5 + s4
		fout[k+3*m] = s5 - s4
	}
}

func (p *Plan) bfly3(fout []complex128, fstride, m int) {
	m2 := 2 * m
	epi3 := p.Twiddles[fstride*m]
	tw1, tw2 := 0, 0

	for k := 0; k < m; k++ {
		s1 := fout[k+m] * p.Twiddles[tw1]
		s2 := fout[k+m2] * p.Twiddles[tw2]

		s3 := s1 + s2
		s0 := s1 - s2
		tw1 += fstride
		tw2 += fstride * 2

		fHead := fout[k]
		fout[k+m] = complex(real(fHead)-0.5*real(s3), imag(fHead)-0.5*imag(s3))

		s0 = complex(real(s0)*imag(epi3), imag(s0)*imag(epi3))

		fout[k] = fHead + s3

		fout[k+m2] = complex(real(fout[k+m])+imag(s0), imag(fout[k+m])-real(s0))
		fout[k+m] = fout[k+m] + complex(-imag(s0), real(s0))
	}
}

func (p *Plan) bfly5(fout []complex128, fstride, m int) {
	ya := p.Twiddles[fstride*m]
	yb := p.Twiddles[fstride*2*m]

	f0, f1, f2, f3, f4 := 0, m, 2*m, 3*m, 4*m

	for u := 0; u < m; u++ {
		s0 := fout[f0]
		s1 := fout[f1] * p.Twiddles[u*fstride]
		s2 := fout[f2] * p.Twiddles[2*u*fstride]
		s3 := fout[f3] * p.Twiddles[3*u*fstride]
		s4 := fout[f4] * p.Twiddles[4*u*fstride]

		s7 := s1 + s4
		s10 := s1 - s4
		s8 := s2 + s3
		s9 := s2 - s3

		fout[f0] = s0 + s7 + s8

		s5 := s0 + complex(
			real(s7)*real(ya)+real(s8)*real(yb),
			imag(s7)*real(ya)+imag(s8)*real(yb),
		)
		s6 := complex(
			imag(s10)*imag(ya)+imag(s9)*imag(yb),
			-real(s10)*imag(ya)-real(s9)*imag(yb),
		)

		fout[f1] = s5 - s6
		fout[f4] = s5 + s6

		s11 := s0 + complex(
			real(s7)*real(yb)+real(s8)*real(ya),
			imag(s7)*real(yb)+imag(s8)*real(ya),
		)
		s12 := complex(
			-imag(s10)*imag(yb)+imag(s9)*imag(ya),
			real(s10)*imag(yb)-real(s9)*imag(ya),
		)

		fout[f2] = s11 + s12
		fout[f3] = s11 - s12

		f0++
		f1++
		f2++
		f3++
		f4++
	}
}

// bflyGeneric handles any radix that does not have a dedicated butterfly
// above, walking the twiddle table modulo NFFT as it accumulates each
// output bin from its p contributing sub-transform outputs.
func (p *Plan) bflyGeneric(fout []complex128, fstride, m, q int) {
	var scratch [MaxRadix]complex128
	norig := p.NFFT

	for u := 0; u < m; u++ {
		k := u
		for q1 := 0; q1 < q; q1++ {
			scratch[q1] = fout[k]
			k += m
		}

		k = u
		for q1 := 0; q1 < q; q1++ {
			twidx := 0
			fout[k] = scratch[0]
			for q2 := 1; q2 < q; q2++ {
				twidx += fstride * k
				if twidx >= norig {
					twidx -= norig
				}
				fout[k] += scratch[q2] * p.Twiddles[twidx]
			}
			k += m
		}
	}
}
