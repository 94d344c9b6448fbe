package feature

import "math"

// Raw holds un-normalized feature values in Order. A nil entry is an absent value.
type Raw [Dimensions]*float64

// Get returns the raw value of name, or nil if it is absent or unknown.
func (r Raw) Get(name Name) *float64 {
	i, ok := Index(name)
	if !ok {
		return nil
	}
	return r[i]
}

// Set stores v as the raw value of name. Unknown names are ignored.
func (r *Raw) Set(name Name, v *float64) {
	if i, ok := Index(name); ok {
		r[i] = v
	}
}

// Empty reports whether every value is absent.
func (r Raw) Empty() bool {
	for _, v := range r {
		if v != nil {
			return false
		}
	}
	return true
}

// Vector normalizes every present value. Absent values become 0.
func (r Raw) Vector() Vector {
	var out Vector
	for i, v := range r {
		if v == nil {
			continue
		}
		out[i] = ranges[Order[i]].Normalize(*v)
	}
	return out
}

// Vector is a normalized feature vector in Order.
type Vector [Dimensions]float64

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every coordinate is zero.
func (v Vector) IsZero() bool {
	return v == Vector{}
}

// Named returns the vector keyed by feature name.
func (v Vector) Named() map[Name]float64 {
	out := make(map[Name]float64, Dimensions)
	for i, n := range Order {
		out[n] = v[i]
	}
	return out
}

// Cosine returns the cosine similarity of a and b.
// A zero-norm operand yields 0.
func Cosine(a, b Vector) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	s := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	// Rounding can push identical vectors a hair past 1.
	if s > 1 {
		return 1
	}
	return s
}

// Percent renders a [0,1] similarity as a 0–100 score rounded to two decimals.
func Percent(score float64) float64 {
	return math.Round(score*10000) / 100
}
