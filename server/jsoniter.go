// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"github.com/go-gl/mathgl/mgl32"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"sync"
	"unsafe"
)

// JSON is the codec of all messages. Make sure functions get run first.
var JSON = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Message{}).String(), encodeMessage, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(mgl32.Quat{}).String(), encodeQuat, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(mgl32.Vec3{}).String(), encodeVec3, neverEmpty)
	jsoniter.RegisterFieldEncoderFunc(reflect.TypeOf(SurfaceUpdate{}).String(), "Heights", encodeHeights, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Message{}).String(), decodeMessage)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(mgl32.Quat{}).String(), decodeQuat)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       true,
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeMessage(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	message := (*Message)(ptr)
	stream.WriteVal(message.messageJSON())
}

// Quaternions are [x, y, z, w] like most engines expect.
func encodeQuat(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	q := (*mgl32.Quat)(ptr)
	stream.WriteArrayStart()
	stream.WriteFloat32Lossy(q.V[0])
	stream.WriteMore()
	stream.WriteFloat32Lossy(q.V[1])
	stream.WriteMore()
	stream.WriteFloat32Lossy(q.V[2])
	stream.WriteMore()
	stream.WriteFloat32Lossy(q.W)
	stream.WriteArrayEnd()
}

func encodeVec3(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	v := (*mgl32.Vec3)(ptr)
	stream.WriteArrayStart()
	stream.WriteFloat32Lossy(v[0])
	stream.WriteMore()
	stream.WriteFloat32Lossy(v[1])
	stream.WriteMore()
	stream.WriteFloat32Lossy(v[2])
	stream.WriteArrayEnd()
}

// Heights are the bulk of a surface update, and need less precision than other floats.
func encodeHeights(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	heights := *(*[]float32)(ptr)

	stream.WriteArrayStart()
	for i, h := range heights {
		if i > 0 {
			stream.WriteMore()
		}
		// Flush stream because buffer is 512 bytes and a surface is often larger
		if i&127 == 127 {
			if stream.Error != nil {
				return
			}
			_ = stream.Flush()
		}
		stream.WriteFloat32Lossy(quantize(h))
	}
	stream.WriteArrayEnd()
}

// quantize rounds to 1/1024, which is finer than any viewer can see.
func quantize(f float32) float32 {
	const q = 1024
	if f < 0 {
		return -float32(int32(-f*q+0.5)) / q
	}
	return float32(int32(f*q+0.5)) / q
}

func decodeQuat(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var xyzw [4]float32
	i := 0
	for iter.ReadArray() {
		if i < len(xyzw) {
			xyzw[i] = iter.ReadFloat32()
		} else {
			iter.Skip()
		}
		i++
	}
	if i != len(xyzw) {
		iter.ReportError("decode quaternion", "expected 4 components")
		return
	}
	*(*mgl32.Quat)(ptr) = mgl32.Quat{W: xyzw[3], V: mgl32.Vec3{xyzw[0], xyzw[1], xyzw[2]}}
}

// Buffers large enough to hold most inbounds
var decodeMessagePool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

// releaseMessageBuffer returns a buffer taken by decodeMessage to its pool.
var releaseMessageBuffer = func(bufPtr *[]byte) {
	*bufPtr = (*bufPtr)[:0]
	decodeMessagePool.Put(bufPtr)
}

func decodeMessage(ptr unsafe.Pointer, topLevelIter *jsoniter.Iterator) {
	bufPtr := decodeMessagePool.Get().(*[]byte)

	// Read bytes so can read twice
	messageBytes := topLevelIter.SkipAndAppendBytes(*bufPtr)

	// Keep the grown buffer, even on error
	defer func() {
		*bufPtr = messageBytes
		releaseMessageBuffer(bufPtr)
	}()

	// Pool iterator with previous pool
	pool := topLevelIter.Pool()
	iter := pool.BorrowIterator(messageBytes)
	defer pool.ReturnIterator(iter)

	// Interface of *Inbound
	var in interface{}

	// Doesn't have to read twice if type is first field
	// If type is found c is > 0
	for c := 0; c < 3; c++ {
		iter.ResetBytes(messageBytes)
		iter.ReadObjectCB(func(i *jsoniter.Iterator, field string) bool {
			if field == "type" {
				// Not already read
				if in == nil {
					messageTypeBytes := i.ReadStringAsSlice()
					inboundType, ok := inboundTypes[messageType(messageTypeBytes)]
					if !ok {
						inboundType = reflect.TypeOf(InvalidInbound{})
					}
					in = reflect.New(inboundType).Interface()

					if !ok {
						in.(*InvalidInbound).messageType = messageType(messageTypeBytes)
					}

					c++
				} else {
					i.Skip()
				}
				return true
			} else if field == "data" {
				// Found type
				if c > 0 {
					i.ReadVal(in)
					c++
					return false // Finished
				} else {
					i.Skip()
				}
			} else {
				i.Skip()
			}
			return true
		})

		if err := iter.Error; err != nil {
			topLevelIter.Error = err
			return
		}

		// No message type
		if c == 0 {
			topLevelIter.Error = errors.New("no inbound message type")
			return
		}
	}

	// Store data
	message := (*Message)(ptr)
	message.Data = reflect.Indirect(reflect.ValueOf(in)).Interface()
}
