package ports

// TrackingCodeGenerator produces fulfillment tracking codes. Codes are random;
// uniqueness is guaranteed by storage, not by the generator.
type TrackingCodeGenerator interface {
	Generate() (string, error)
}
