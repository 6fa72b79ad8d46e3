package anim

// EntityId identifies an animated entity within one Store. The owner assigns it once
// and keeps it for the entity's whole lifetime.
type EntityId uint64
