package pm

import "github.com/mjibson/go-dsp/fft"

// transformAxis3D applies a 1-D complex FFT (or inverse) to every line of
// data along one of the three axes of an N x N x N cube stored in
// row-major order (index = i*n*n + j*n + k). Repeating this along all
// three axes performs a full 3-D transform, since the discrete Fourier
// transform is separable — the composition go-dsp's own audio path never
// needed (it only ever ran a single 1-D FFT), generalized here to the
// three-dimensional Poisson solve spec.md 4.G specifies.
func transformAxis3D(data []complex128, n int, axis int, inverse bool) {
	line := make([]complex128, n)
	switch axis {
	case 0: // vary i, (j,k) fixed
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				for i := 0; i < n; i++ {
					line[i] = data[idx3(i, j, k, n)]
				}
				line = transform1D(line, inverse)
				for i := 0; i < n; i++ {
					data[idx3(i, j, k, n)] = line[i]
				}
			}
		}
	case 1: // vary j, (i,k) fixed
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				for j := 0; j < n; j++ {
					line[j] = data[idx3(i, j, k, n)]
				}
				line = transform1D(line, inverse)
				for j := 0; j < n; j++ {
					data[idx3(i, j, k, n)] = line[j]
				}
			}
		}
	default: // vary k, (i,j) fixed
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for k := 0; k < n; k++ {
					line[k] = data[idx3(i, j, k, n)]
				}
				line = transform1D(line, inverse)
				for k := 0; k < n; k++ {
					data[idx3(i, j, k, n)] = line[k]
				}
			}
		}
	}
}

func transform1D(line []complex128, inverse bool) []complex128 {
	if inverse {
		return fft.IFFT(line)
	}
	return fft.FFT(line)
}

// forwardFFT3D executes the forward real-to-complex FFT step of spec.md
// 4.G Phase 3, implemented as three successive 1-D complex FFTs (go-dsp
// exposes no native r2c primitive, so the input's zero imaginary part is
// carried through the full complex cube rather than a packed half-spectrum
// — see DESIGN.md for this layout tradeoff).
func forwardFFT3D(data []complex128, n int) {
	transformAxis3D(data, n, 0, false)
	transformAxis3D(data, n, 1, false)
	transformAxis3D(data, n, 2, false)
}

// backwardFFT3D executes the inverse FFT of spec.md 4.G Phase 3. Each of
// the three 1-D passes normalizes by 1/n internally (go-dsp's IFFT
// convention), so the composition already applies the overall 1/n^3
// factor spec.md 4.G calls out as a separate "normalize potential"
// step — no further scaling is needed here.
func backwardFFT3D(data []complex128, n int) {
	transformAxis3D(data, n, 0, true)
	transformAxis3D(data, n, 1, true)
	transformAxis3D(data, n, 2, true)
}

func idx3(i, j, k, n int) int {
	return i*n*n + j*n + k
}

// wrapIndex normalizes idx into [0, n) tolerating negative input, the
// "+N mod N to tolerate negative i" spec.md 4.G Phase 2 describes.
func wrapIndex(idx, n int) int {
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

// waveNumberIndex maps a 0-based frequency-bin index to the signed
// integer multiple of the fundamental it represents: [0, n/2] map to
// themselves, (n/2, n) map to i-n, spec.md 4.G Phase 3's kx/ky/kz rule
// applied uniformly across the full complex spectrum this implementation
// carries (see forwardFFT3D).
func waveNumberIndex(i, n int) int {
	if i <= n/2 {
		return i
	}
	return i - n
}
