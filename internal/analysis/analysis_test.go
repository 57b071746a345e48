package analysis

import (
	"math"
	"testing"
)

func TestFFTConstantSignal(t *testing.T) {
	data := []float64{1, 1, 1, 1}
	result, err := FFT(data)
	if err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	// All power in the zero-frequency bin.
	if math.Abs(real(result[0])-4) > 1e-9 {
		t.Errorf("dc component = %v, want 4", result[0])
	}
	for i := 1; i < len(result); i++ {
		if math.Abs(real(result[i])) > 1e-9 || math.Abs(imag(result[i])) > 1e-9 {
			t.Errorf("bin %d = %v, want 0", i, result[i])
		}
	}
}

func TestFFTRejectsNonPowerOfTwo(t *testing.T) {
	if _, err := FFT([]float64{1, 2, 3, 4, 5, 6}); err == nil {
		t.Error("length 6 must be rejected, not transformed")
	}
}

func TestPowerSpectrumPeak(t *testing.T) {
	// A pure cosine at 4 cycles over 64 samples must peak in bin 4.
	n := 64
	data := make([]float64, n)
	for i := range data {
		data[i] = math.Cos(2 * math.Pi * 4 * float64(i) / float64(n))
	}

	ps := PowerSpectrum(data)

	peak := 0
	for i := range ps {
		if ps[i] > ps[peak] {
			peak = i
		}
	}
	if peak != 4 {
		t.Errorf("spectrum peaks at bin %d, want 4", peak)
	}
}

func TestPowerSpectrumPadsOddLength(t *testing.T) {
	// A constant series of awkward length still puts its peak at DC.
	ps := PowerSpectrum([]float64{3, 3, 3, 3, 3})
	if len(ps) != 4 {
		t.Fatalf("spectrum has %d bins, want 4 after padding to 8", len(ps))
	}
	for i := 1; i < len(ps); i++ {
		if ps[i] >= ps[0] {
			t.Errorf("bin %d = %f should stay below the DC bin %f", i, ps[i], ps[0])
		}
	}
}

func TestPad(t *testing.T) {
	padded := Pad([]float64{1, 2, 3, 4, 5})
	if len(padded) != 8 {
		t.Errorf("padded length = %d, want 8", len(padded))
	}
	if padded[4] != 5 || padded[5] != 0 {
		t.Error("padding corrupted data")
	}
}

func TestAutocorrelationLagZero(t *testing.T) {
	c := Autocorrelation([]float64{1, 2, 3, 4, 3, 2, 1, 2}, 3)
	if c[0] != 1 {
		t.Errorf("c(0) = %f, want 1", c[0])
	}
}

func TestAutocorrelationConstantSeries(t *testing.T) {
	c := Autocorrelation([]float64{2, 2, 2, 2, 2}, 2)
	for k := 1; k < len(c); k++ {
		if c[k] != 0 {
			t.Errorf("c(%d) = %f, want 0 for constant series", k, c[k])
		}
	}
}

func TestAutocorrelationAlternatingSeries(t *testing.T) {
	data := []float64{1, -1, 1, -1, 1, -1, 1, -1}
	c := Autocorrelation(data, 2)

	if c[1] >= 0 {
		t.Errorf("alternating series should anticorrelate at lag 1, got %f", c[1])
	}
	if c[2] <= 0 {
		t.Errorf("alternating series should correlate at lag 2, got %f", c[2])
	}
}

func TestIntegratedTimeUncorrelated(t *testing.T) {
	// Alternating data decorrelates immediately; tau stays near 1/2.
	data := []float64{1, -1, 1, -1, 1, -1, 1, -1, 1, -1}
	tau := IntegratedTime(data)
	if tau != 0.5 {
		t.Errorf("tau = %f, want 0.5", tau)
	}
}

func TestIntegratedTimeCorrelated(t *testing.T) {
	// A slowly varying series should report tau well above 1/2.
	data := make([]float64, 64)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * float64(i) / 64)
	}
	if tau := IntegratedTime(data); tau <= 1.0 {
		t.Errorf("tau = %f, want > 1 for correlated series", tau)
	}
}
