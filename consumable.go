package gimbal

import "golang.org/x/exp/constraints"

// Number is the set of types a ConsumableValue can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// ConsumableValue is a pending absolute or delta adjustment that drains as
// it is applied. The zero value holds nothing and every Apply on it returns
// the target unchanged.
type ConsumableValue[T Number] struct {
	value    T
	hasValue bool
	isDelta  bool
}

// AbsoluteValue returns a consumable that replaces the target with v.
func AbsoluteValue[T Number](v T) ConsumableValue[T] {
	return ConsumableValue[T]{value: v, hasValue: true}
}

// DeltaValue returns a consumable that adds v to the target.
func DeltaValue[T Number](v T) ConsumableValue[T] {
	return ConsumableValue[T]{value: v, hasValue: true, isDelta: true}
}

// HasValue reports whether part of the value is still pending.
func (c *ConsumableValue[T]) HasValue() bool {
	return c.hasValue
}

// IsDelta reports whether the pending value is relative to the target.
func (c *ConsumableValue[T]) IsDelta() bool {
	return c.isDelta
}

// Value returns the pending value. Meaningless when HasValue is false.
func (c *ConsumableValue[T]) Value() T {
	return c.value
}

// Apply consumes the whole value against target and returns the result.
func (c *ConsumableValue[T]) Apply(target T) T {
	if !c.hasValue {
		return target
	}
	c.hasValue = false
	if c.isDelta {
		return target + c.value
	}
	return c.value
}

// ApplyClamped is like Apply but keeps the result inside [min, max]. Any
// part of the value that could not be applied stays pending as a delta so
// that later frames keep converging. Panics if min > max.
//
// With nothing pending ApplyClamped is a no-op and returns target as is,
// even when target lies outside [min, max]. Only a pending value is clamped.
func (c *ConsumableValue[T]) ApplyClamped(target, min, max T) T {
	if min > max {
		panic("gimbal: ApplyClamped called with min > max")
	}
	if !c.hasValue {
		return target
	}

	if c.isDelta {
		candidate := target + c.value
		var result T
		switch {
		case candidate > max:
			result = max
		case candidate < min:
			result = min
		default:
			return c.Apply(target)
		}
		c.value -= result - target
		return result
	}

	switch {
	case c.value > max:
		c.value -= max
		c.isDelta = true
		return max
	case c.value < min:
		c.value -= min
		c.isDelta = true
		return min
	default:
		return c.Apply(target)
	}
}
