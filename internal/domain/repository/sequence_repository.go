package repository

// SequenceRepository allocates monotonically increasing numbers per document
// series (JOB, INV). Next must be backed by an atomic increment-and-return on
// a counter row so that concurrent allocations inside concurrent transactions
// can never observe the same value; callers invoke it inside the same
// transaction as the document insert.
type SequenceRepository interface {
	Next(series string) (int64, error)
}
