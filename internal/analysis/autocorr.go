package analysis

// Autocorrelation returns the normalized autocorrelation function of a
// series up to maxLag: c(k) = <(x_t - mean)(x_{t+k} - mean)> / variance.
// c(0) is 1 by construction. A constant series has no fluctuations to
// correlate; it returns all zeros past lag 0.
func Autocorrelation(data []float64, maxLag int) []float64 {
	n := len(data)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range data {
		d := v - mean
		variance += d * d
	}
	variance /= float64(n)

	c := make([]float64, maxLag+1)
	c[0] = 1
	if variance == 0 {
		return c
	}

	for k := 1; k <= maxLag; k++ {
		sum := 0.0
		for t := 0; t < n-k; t++ {
			sum += (data[t] - mean) * (data[t+k] - mean)
		}
		c[k] = sum / float64(n-k) / variance
	}

	return c
}

// IntegratedTime estimates the integrated autocorrelation time
// tau = 1/2 + sum c(k), truncating the sum at the first non-positive
// correlation (the usual windowing heuristic). Consecutive samples
// separated by more than ~2*tau sweeps are effectively independent.
func IntegratedTime(data []float64) float64 {
	c := Autocorrelation(data, len(data)/2)
	tau := 0.5
	for k := 1; k < len(c); k++ {
		if c[k] <= 0 {
			break
		}
		tau += c[k]
	}
	return tau
}
