package lora

import "github.com/kc2g-lora/lora-phy/pkg/loracode"

// Encode Hamming-encodes payload into two symbols per byte (high nibble
// then low nibble) written to syms. Fails ErrOutOfRange if syms cannot
// hold 2*len(payload) entries.
func Encode(payload []byte, syms []uint16) (int, error) {
	need := 2 * len(payload)
	if len(syms) < need {
		return 0, ErrOutOfRange
	}
	for i, b := range payload {
		hi := (b >> 4) & 0xF
		lo := b & 0xF
		syms[2*i] = uint16(loracode.EncodeHamming84(hi))
		syms[2*i+1] = uint16(loracode.EncodeHamming84(lo))
	}
	return need, nil
}

// Decode Hamming-decodes syms pairwise into bytes written to out, and
// reports the CRC-16 verdict in ws.Metrics.CRCOk when the decoded payload
// is at least 4 bytes: the trailer's last two bytes (little-endian) are
// checked against CRC16 of bytes [2, len-2). Shorter outputs leave
// CRCOk false. An odd symbol count fails ErrInvalidArg.
func Decode(ws *Workspace, syms []uint16, out []byte) (int, error) {
	if len(syms)%2 != 0 {
		return 0, ErrInvalidArg
	}
	need := len(syms) / 2
	if len(out) < need {
		return 0, ErrOutOfRange
	}

	for i := 0; i < need; i++ {
		hi, _, _ := loracode.DecodeHamming84(byte(syms[2*i]))
		lo, _, _ := loracode.DecodeHamming84(byte(syms[2*i+1]))
		out[i] = hi<<4 | lo
	}

	// The CRC window [2, len-2) presumes a two-byte MAC header prefix
	// precedes the checksummed region; shorter decodes carry no trailer
	// to check at all.
	ws.Metrics.CRCOk = false
	if need >= 4 {
		payload := out[:need]
		trailer := payload[need-2:]
		got := uint16(trailer[0]) | uint16(trailer[1])<<8

		end := need - 2
		want := loracode.CRC16(payload[2:end])
		ws.Metrics.CRCOk = got == want
	}

	return need, nil
}
