package array

// Element accessors. The dtype switch happens once per operand per
// operation; the returned closures are what the hot loops call, in one
// of the three working domains (float64, int64, uint64).

// floatAt returns a reader of physical element offsets as float64.
func (a *Array) floatAt() func(off int) float64 {
	switch a.dtype {
	case Float64:
		d := a.f64()
		return func(off int) float64 { return d[off] }
	case Float32:
		d := a.f32()
		return func(off int) float64 { return float64(d[off]) }
	case Int8:
		d := a.i8()
		return func(off int) float64 { return float64(d[off]) }
	case Int16:
		d := a.i16()
		return func(off int) float64 { return float64(d[off]) }
	case Int32:
		d := a.i32()
		return func(off int) float64 { return float64(d[off]) }
	case Int64:
		d := a.i64()
		return func(off int) float64 { return float64(d[off]) }
	case Uint8:
		d := a.u8()
		return func(off int) float64 { return float64(d[off]) }
	case Uint16:
		d := a.u16()
		return func(off int) float64 { return float64(d[off]) }
	case Uint32:
		d := a.u32()
		return func(off int) float64 { return float64(d[off]) }
	case Uint64:
		d := a.u64()
		return func(off int) float64 { return float64(d[off]) }
	default: // Bool
		d := a.u8()
		return func(off int) float64 {
			if d[off] != 0 {
				return 1
			}
			return 0
		}
	}
}

// intAt returns a reader of physical element offsets as int64. Uint64
// values pass through bit-preserving (the uint64 domain reinterprets).
func (a *Array) intAt() func(off int) int64 {
	switch a.dtype {
	case Int64:
		d := a.i64()
		return func(off int) int64 { return d[off] }
	case Uint64:
		d := a.u64()
		return func(off int) int64 { return int64(d[off]) }
	case Int8:
		d := a.i8()
		return func(off int) int64 { return int64(d[off]) }
	case Int16:
		d := a.i16()
		return func(off int) int64 { return int64(d[off]) }
	case Int32:
		d := a.i32()
		return func(off int) int64 { return int64(d[off]) }
	case Uint8:
		d := a.u8()
		return func(off int) int64 { return int64(d[off]) }
	case Uint16:
		d := a.u16()
		return func(off int) int64 { return int64(d[off]) }
	case Uint32:
		d := a.u32()
		return func(off int) int64 { return int64(d[off]) }
	case Float32:
		d := a.f32()
		return func(off int) int64 { return int64(d[off]) }
	case Float64:
		d := a.f64()
		return func(off int) int64 { return int64(d[off]) }
	default: // Bool
		d := a.u8()
		return func(off int) int64 {
			if d[off] != 0 {
				return 1
			}
			return 0
		}
	}
}

// uintAt returns a reader of physical element offsets as uint64.
func (a *Array) uintAt() func(off int) uint64 {
	if a.dtype == Uint64 {
		d := a.u64()
		return func(off int) uint64 { return d[off] }
	}
	at := a.intAt()
	return func(off int) uint64 { return uint64(at(off)) }
}

// setFloatAt returns a writer of physical element offsets from float64,
// truncating toward the array's dtype.
func (a *Array) setFloatAt() func(off int, v float64) {
	switch a.dtype {
	case Float64:
		d := a.f64()
		return func(off int, v float64) { d[off] = v }
	case Float32:
		d := a.f32()
		return func(off int, v float64) { d[off] = float32(v) }
	case Int8:
		d := a.i8()
		return func(off int, v float64) { d[off] = int8(int64(v)) }
	case Int16:
		d := a.i16()
		return func(off int, v float64) { d[off] = int16(int64(v)) }
	case Int32:
		d := a.i32()
		return func(off int, v float64) { d[off] = int32(int64(v)) }
	case Int64:
		d := a.i64()
		return func(off int, v float64) { d[off] = int64(v) }
	case Uint8:
		d := a.u8()
		return func(off int, v float64) { d[off] = uint8(int64(v)) }
	case Uint16:
		d := a.u16()
		return func(off int, v float64) { d[off] = uint16(int64(v)) }
	case Uint32:
		d := a.u32()
		return func(off int, v float64) { d[off] = uint32(int64(v)) }
	case Uint64:
		d := a.u64()
		return func(off int, v float64) { d[off] = uint64(v) }
	default: // Bool
		d := a.u8()
		return func(off int, v float64) {
			if v != 0 {
				d[off] = 1
			} else {
				d[off] = 0
			}
		}
	}
}

// setIntAt returns a writer of physical element offsets from int64.
func (a *Array) setIntAt() func(off int, v int64) {
	switch a.dtype {
	case Int64:
		d := a.i64()
		return func(off int, v int64) { d[off] = v }
	case Uint64:
		d := a.u64()
		return func(off int, v int64) { d[off] = uint64(v) }
	case Int8:
		d := a.i8()
		return func(off int, v int64) { d[off] = int8(v) }
	case Int16:
		d := a.i16()
		return func(off int, v int64) { d[off] = int16(v) }
	case Int32:
		d := a.i32()
		return func(off int, v int64) { d[off] = int32(v) }
	case Uint8:
		d := a.u8()
		return func(off int, v int64) { d[off] = uint8(v) }
	case Uint16:
		d := a.u16()
		return func(off int, v int64) { d[off] = uint16(v) }
	case Uint32:
		d := a.u32()
		return func(off int, v int64) { d[off] = uint32(v) }
	case Float32:
		d := a.f32()
		return func(off int, v int64) { d[off] = float32(v) }
	case Float64:
		d := a.f64()
		return func(off int, v int64) { d[off] = float64(v) }
	default: // Bool
		d := a.u8()
		return func(off int, v int64) {
			if v != 0 {
				d[off] = 1
			} else {
				d[off] = 0
			}
		}
	}
}

// setUintAt returns a writer of physical element offsets from uint64.
func (a *Array) setUintAt() func(off int, v uint64) {
	if a.dtype == Uint64 {
		d := a.u64()
		return func(off int, v uint64) { d[off] = v }
	}
	set := a.setIntAt()
	return func(off int, v uint64) { set(off, int64(v)) }
}

// index maps a logical flat index to a physical offset, with a direct
// path for contiguous layouts.
func (a *Array) index() func(i int) int {
	if a.IsContiguous() {
		off := a.offset
		return func(i int) int { return off + i }
	}
	return a.linearOffset
}

// floatLoader reads logical flat indices as float64.
func (a *Array) floatLoader() func(i int) float64 {
	at, idx := a.floatAt(), a.index()
	return func(i int) float64 { return at(idx(i)) }
}

// intLoader reads logical flat indices as int64.
func (a *Array) intLoader() func(i int) int64 {
	at, idx := a.intAt(), a.index()
	return func(i int) int64 { return at(idx(i)) }
}

// uintLoader reads logical flat indices as uint64.
func (a *Array) uintLoader() func(i int) uint64 {
	at, idx := a.uintAt(), a.index()
	return func(i int) uint64 { return at(idx(i)) }
}

// floatStorer writes logical flat indices from float64.
func (a *Array) floatStorer() func(i int, v float64) {
	set, idx := a.setFloatAt(), a.index()
	return func(i int, v float64) { set(idx(i), v) }
}

// intStorer writes logical flat indices from int64.
func (a *Array) intStorer() func(i int, v int64) {
	set, idx := a.setIntAt(), a.index()
	return func(i int, v int64) { set(idx(i), v) }
}

// uintStorer writes logical flat indices from uint64.
func (a *Array) uintStorer() func(i int, v uint64) {
	set, idx := a.setUintAt(), a.index()
	return func(i int, v uint64) { set(idx(i), v) }
}
