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

	"github.com/pbnjay/memory"
)

// Batches picked so each goroutine gets a usefully large slice without
// starving small images of parallelism.
const batchesPerCPU=8

// bytesPerElement is the footprint of one []float32 element in a batch
// buffer.
const bytesPerElement=4

// Number of parallel workers to use for a domain of the given size. Starts
// from NumCPU and, as long as the free-memory probe returns a usable
// reading, backs off one worker at a time while the memory a fully
// concurrent run would hold resident (one in-flight batch per worker)
// exceeds half of free memory -- the same reduce-until-it-fits loop the
// stacking pipeline runs over imageLevelParallelism in PrepareBatches.
// Falls back to NumCPU if the probe is unavailable, exactly as the
// stacking pipeline falls back when it cannot size batches.
func Workers(domainSize int) int {
	n:=runtime.NumCPU()
	free:=memory.FreeMemory()
	if free==0 {
		return n
	}
	budget:=free/2
	for n>1 {
		batchSize:=int64(domainSize+batchesPerCPU*n-1)/int64(batchesPerCPU*n)
		resident:=uint64(n)*uint64(batchSize)*bytesPerElement
		if resident<=budget {
			break
		}
		n--
	}
	return n
}

// MapFloat32 applies fn to disjoint batches of data in parallel, across
// 8*Workers(len(data)) batches, with a semaphore channel keeping at most
// Workers(len(data)) of them in flight. fn must only touch the batch it is
// given; batches never overlap, so no further synchronization is required.
func MapFloat32(data []float32, fn func(batch []float32)) {
	workers:=Workers(len(data))
	numBatches:=batchesPerCPU*workers
	if numBatches<1 { numBatches=1 }
	batchSize:=(len(data)+numBatches-1)/numBatches
	if batchSize<1 { batchSize=1 }

	sem:=make(chan bool, workers)
	for lower:=0; lower<len(data); lower+=batchSize {
		upper:=lower+batchSize
		if upper>len(data) { upper=len(data) }
		sem <- true
		go func(batch []float32) {
			fn(batch)
			<-sem
		}(data[lower:upper])
	}
	for i:=0; i<cap(sem); i++ { sem <- true }
}

// MapIndex applies fn(i) for every i in [0,n) in parallel, across
// 8*Workers(n) batches, with a semaphore channel keeping at most
// Workers(n) of them in flight. Used where the computation needs the pixel
// index itself rather than just the slice value, e.g. final per-pixel
// normalization passes that read neighboring buffers by coordinate.
func MapIndex(n int, fn func(i int)) {
	workers:=Workers(n)
	numBatches:=batchesPerCPU*workers
	if numBatches<1 { numBatches=1 }
	batchSize:=(n+numBatches-1)/numBatches
	if batchSize<1 { batchSize=1 }

	sem:=make(chan bool, workers)
	for lower:=0; lower<n; lower+=batchSize {
		upper:=lower+batchSize
		if upper>n { upper=n }
		sem <- true
		go func(lower, upper int) {
			for i:=lower; i<upper; i++ { fn(i) }
			<-sem
		}(lower, upper)
	}
	for i:=0; i<cap(sem); i++ { sem <- true }
}
