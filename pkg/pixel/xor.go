package pixel

// MaskKey reduces any integer key to its low byte (two's complement),
// so -1 becomes 255 and 381 becomes 125.
func MaskKey(key int64) uint8 {
	return uint8(key & 0xFF)
}

// XORBytes writes src[i] ^ k into dst[i]. dst and src may be the same slice.
// dst must be at least as long as src.
func XORBytes(dst, src []byte, k uint8) {
	for i := range src {
		dst[i] = src[i] ^ k
	}
}

// Transform XORs every channel of every pixel with MaskKey(key), in place.
// Applying it twice with the same key restores the original pixels, which is
// why encryption and decryption share this one function.
func Transform(g Grid, key int64) {
	k := MaskKey(key)

	// Packed grids skip the per-pixel interface calls
	if rgb, ok := g.(*RGBGrid); ok {
		for y := 0; y < rgb.H; y++ {
			row := rgb.Pix[y*rgb.Stride : y*rgb.Stride+rgb.W*3]
			XORBytes(row, row, k)
		}
		return
	}

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := g.At(x, y)
			g.Set(x, y, RGB{p[0] ^ k, p[1] ^ k, p[2] ^ k})
		}
	}
}
