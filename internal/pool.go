// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package internal

import (
	"runtime"
	"sync"
)

// Don´t you wish for generic types in golang? Sigh.

// Pool of constant sized []float32 arrays of given size, to reduce allocation overhead
// for the raster buffers and in the separator's and material pipeline's hot loops.
var poolFloat32=struct{
    sync.RWMutex
    m map[int]*sync.Pool
}{m: make(map[int]*sync.Pool)}

// Pool of constant sized []int32 arrays. No package in this module draws from it; cluster
// assignments and material set indices are plain []int slices.
var poolInt32=struct{
    sync.RWMutex
    m map[int]*sync.Pool
}{m: make(map[int]*sync.Pool)}

// Clears all memory pools and triggers garbage collection
func ClearPools() {
	poolFloat32=struct{
	    sync.RWMutex
	    m map[int]*sync.Pool
	}{m: make(map[int]*sync.Pool)}

	poolInt32=struct{
	    sync.RWMutex
	    m map[int]*sync.Pool
	}{m: make(map[int]*sync.Pool)}

	runtime.GC()
}

// Returns a pool for []float32 arrays of the given size
func getSizedPoolFloat32(size int) *sync.Pool {
	poolFloat32.RLock()
	pool:=poolFloat32.m[size]
	poolFloat32.RUnlock()
	if pool==nil {
		pool=&sync.Pool{
			New: func() interface{} {
				return make([]float32, size)
			},
		}
		poolFloat32.Lock()
		poolFloat32.m[size]=pool
		poolFloat32.Unlock()
	}
	return pool
}

// Retrieves a zeroed array of given size from the float32 pool
func GetFloat32FromPool(size int) []float32 {
	pool:=getSizedPoolFloat32(size)
	arr:=pool.Get().([]float32)
	for i:=range arr { arr[i]=0 }
	return arr
}

// Returns an array of given size to the float32 pool
func PutFloat32IntoPool(arr []float32) {
	pool:=getSizedPoolFloat32(cap(arr))
	pool.Put(arr[:cap(arr)])
}

// Returns a pool for []int32 arrays of the given size
func getSizedPoolInt32(size int) *sync.Pool {
	poolInt32.RLock()
	pool:=poolInt32.m[size]
	poolInt32.RUnlock()
	if pool==nil {
		pool=&sync.Pool{
			New: func() interface{} {
				return make([]int32, size)
			},
		}
		poolInt32.Lock()
		poolInt32.m[size]=pool
		poolInt32.Unlock()
	}
	return pool
}

// Retrieves a zeroed array of given size from the int32 pool
func GetInt32FromPool(size int) []int32 {
	pool:=getSizedPoolInt32(size)
	arr:=pool.Get().([]int32)
	for i:=range arr { arr[i]=0 }
	return arr
}

// Returns an array of given size to the int32 pool
func PutInt32IntoPool(arr []int32) {
	pool:=getSizedPoolInt32(cap(arr))
	pool.Put(arr[:cap(arr)])
}
