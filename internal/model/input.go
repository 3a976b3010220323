package model

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
)

type Student struct {
	ID   int64 `mapstructure:"id"`
	Exam string
}

type Room struct {
	ID       string `mapstructure:"id"`
	Rows     int
	Cols     int
	SkipRows bool `mapstructure:"skipRows"`
	SkipCols bool `mapstructure:"skipCols"`
}

// Assignment seats one student. Produced only when the search ends with an
// OPTIMAL or FEASIBLE status.
type Assignment struct {
	StudentID int64  `json:"studentId"`
	RoomID    string `json:"roomId"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
}

// ModelInput is the wire form of a seating request. Restrictions maps an exam
// to the rooms its students may sit in: an absent exam may use any room, an
// exam mapped to an empty list may use none.
type ModelInput struct {
	Students       []Student
	Rooms          []Room
	Restrictions   map[string][]string
	TimeoutSeconds int `mapstructure:"timeoutSeconds"`
}

const DefaultTimeoutSeconds = 120

func (input ModelInput) Timeout() time.Duration {
	seconds := input.TimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var input ModelInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return ModelInput{}, err
	}

	return input, nil
}
