// Copyright (C) 2021 Aung Maw
// Licensed under the GNU General Public License v3.0

package students

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aungmawjj/juria-loyalty/execution/chaincode"
	"github.com/aungmawjj/juria-loyalty/util"
)

// errors
var (
	ErrAlreadyEnrolled = errors.New("student already enrolled")
	ErrEmptyName       = errors.New("student name is required")
	ErrNotPayable      = errors.New("method does not accept value")
	ErrMethodNotFound  = errors.New("method not found")
)

const (
	MethodEnrollStudent = "enrollStudent"
	MethodGetStudent    = "getEnrolledStudentByAddress"
)

var prefixStudent = []byte("student/")

type Input struct {
	Method  string `json:"method"`
	Name    string `json:"name,omitempty"`
	Age     uint64 `json:"age,omitempty"`
	Address []byte `json:"address,omitempty"`
}

// Student record, unknown addresses read as zero Student
type Student struct {
	Name string `json:"name"`
	Age  uint64 `json:"age"`
}

// Students chaincode registers one student per caller identity
type Students struct{}

var _ chaincode.Chaincode = (*Students)(nil)

func (sc *Students) Init(ctx chaincode.CallContext) error {
	return nil
}

func (sc *Students) Invoke(ctx chaincode.CallContext) error {
	input, err := parseInput(ctx.Input())
	if err != nil {
		return err
	}
	switch input.Method {

	case MethodEnrollStudent:
		return invokeEnroll(ctx, input)

	default:
		return ErrMethodNotFound
	}
}

func (sc *Students) Query(ctx chaincode.CallContext) ([]byte, error) {
	input, err := parseInput(ctx.Input())
	if err != nil {
		return nil, err
	}
	switch input.Method {

	case MethodGetStudent:
		student, err := getStudent(ctx, input.Address)
		if err != nil {
			return nil, err
		}
		return json.Marshal(student)

	default:
		return nil, ErrMethodNotFound
	}
}

func invokeEnroll(ctx chaincode.CallContext, input *Input) error {
	if !ctx.Value().IsZero() {
		return ErrNotPayable
	}
	if input.Name == "" {
		return ErrEmptyName
	}
	if ctx.GetState(studentKey(ctx.Sender())) != nil {
		return ErrAlreadyEnrolled
	}
	b, _ := json.Marshal(&Student{Name: input.Name, Age: input.Age})
	ctx.SetState(studentKey(ctx.Sender()), b)
	return nil
}

func getStudent(ctx chaincode.CallContext, addr []byte) (*Student, error) {
	student := new(Student)
	b := ctx.GetState(studentKey(addr))
	if b == nil {
		return student, nil
	}
	if err := json.Unmarshal(b, student); err != nil {
		return nil, fmt.Errorf("corrupted student record: %w", err)
	}
	return student, nil
}

func studentKey(addr []byte) []byte {
	return util.ConcatBytes(prefixStudent, addr)
}

func parseInput(b []byte) (*Input, error) {
	input := new(Input)
	err := json.Unmarshal(b, input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	return input, nil
}
