package parameter

import "time"

// World Stepping
const (
	// FixedTimeStep is the physics sub-step size in seconds
	FixedTimeStep = 1.0 / 60.0

	// MaxSubSteps bounds catch-up sub-steps per frame
	MaxSubSteps = 3

	// SolverIterations is the sequential impulse iteration count per sub-step
	SolverIterations = 10
)

// Body Defaults
const (
	DefaultBodyMass  = 1.0
	LinearDamping    = 0.01
	AngularDamping   = 0.01
	MinBoxHalfExtent = 0.01
)

// Contact Resolution
const (
	// RestitutionVelocityThreshold suppresses bounce below this approach speed (m/s)
	RestitutionVelocityThreshold = 0.5

	// PenetrationSlop is the overlap tolerated before positional correction (m)
	PenetrationSlop = 0.005

	// PositionCorrection is the fraction of remaining overlap removed per sub-step
	PositionCorrection = 0.8
)

// Sleeping
const (
	SleepSpeedLimit = 0.1
	SleepTimeLimit  = 1 * time.Second
)

// Tunable Defaults
const (
	DefaultGravityY              = -9.82
	DefaultFloorFriction         = 0.1
	DefaultFloorRestitution      = 0.7
	DefaultImpactVelocityCeiling = 10.0 // m/s
)

// Spawn Ranges
const (
	SpawnHeight      = 3.0
	SpawnSpread      = 3.0 // x/z drawn from [-spread/2, spread/2)
	SpawnRadiusMin   = 0.1
	SpawnRadiusRange = 0.5
	SpawnBoxMin      = 0.05
)
