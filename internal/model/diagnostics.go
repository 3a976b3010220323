package model

// Diagnostics reports what a Build run did, regardless of whether it
// produced a seating.
type Diagnostics struct {
	Students              int    `json:"students"`
	Rooms                 int    `json:"rooms"`
	TotalCapacity         int    `json:"totalCapacity"`
	Variables             int    `json:"variables"`
	Constraints           int    `json:"constraints"`
	SeparationConstraints int    `json:"separationConstraints"`
	SeparationCapHit      bool   `json:"separationCapHit"`
	SymmetryBreaking      bool   `json:"symmetryBreaking"`
	Status                string `json:"status"`
	SolveTimeMs           int64  `json:"solveTimeMs"`
}
