// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package students

import (
	"encoding/json"
	"testing"

	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/stretchr/testify/assert"
)

func queryStudent(t *testing.T, sc *Students, ctx *chaincode.MockCallContext, addr []byte) *Student {
	b, _ := json.Marshal(&Input{Method: MethodGetStudent, Address: addr})
	res, err := sc.Query(ctx.Call(nil, nil, b))
	assert.NoError(t, err)
	student := new(Student)
	assert.NoError(t, json.Unmarshal(res, student))
	return student
}

func TestStudents_Enroll(t *testing.T) {
	assert := assert.New(t)
	sc := new(Students)
	ctx := chaincode.NewMockCallContext([]byte{9, 9, 9})
	assert.NoError(sc.Init(ctx))

	b, _ := json.Marshal(&Input{Method: MethodEnrollStudent, Name: "Maik Vinicius", Age: 25})
	err := sc.Invoke(ctx.Call([]byte{1, 1, 1}, nil, b))
	assert.NoError(err)

	student := queryStudent(t, sc, ctx, []byte{1, 1, 1})
	assert.Equal("Maik Vinicius", student.Name)
	assert.EqualValues(25, student.Age)

	err = sc.Invoke(ctx.Call([]byte{1, 1, 1}, nil, b))
	assert.Equal(ErrAlreadyEnrolled, err)

	b, _ = json.Marshal(&Input{Method: MethodEnrollStudent})
	err = sc.Invoke(ctx.Call([]byte{2, 2, 2}, nil, b))
	assert.Equal(ErrEmptyName, err)
}

func TestStudents_DefaultValues(t *testing.T) {
	assert := assert.New(t)
	sc := new(Students)
	ctx := chaincode.NewMockCallContext([]byte{9, 9, 9})

	student := queryStudent(t, sc, ctx, []byte{2, 2, 2})
	assert.Equal("", student.Name)
	assert.EqualValues(0, student.Age)
}

func TestStudents_MethodNotFound(t *testing.T) {
	assert := assert.New(t)
	sc := new(Students)
	ctx := chaincode.NewMockCallContext([]byte{9, 9, 9})

	b, _ := json.Marshal(&Input{Method: "unknown"})
	assert.Equal(ErrMethodNotFound, sc.Invoke(ctx.Call([]byte{1}, nil, b)))
	_, err := sc.Query(ctx.Call(nil, nil, b))
	assert.Equal(ErrMethodNotFound, err)
}

func TestStudents_CorruptedRecord(t *testing.T) {
	assert := assert.New(t)
	sc := new(Students)
	ctx := chaincode.NewMockCallContext([]byte{9, 9, 9})
	assert.NoError(sc.Init(ctx))

	ctx.SetState(studentKey([]byte{1, 1, 1}), []byte("not json"))
	b, _ := json.Marshal(&Input{Method: MethodGetStudent, Address: []byte{1, 1, 1}})
	_, err := sc.Query(ctx.Call(nil, nil, b))
	assert.Error(err)
	assert.Contains(err.Error(), "corrupted student record")
}
