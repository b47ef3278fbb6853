// Copyright 2020 Aleksandr Demakin. All rights reserved.

package nbit

// Operation is a row of the ALU function table.
// U selects the unit (0 for logic, 1 for arithmetic),
// Op0 and Op1 select the function within the unit.
type Operation struct {
	U, Op0, Op1 uint8
	Name        string
	Apply       func(x, y Int) Int
}

// Code returns the control lines as a 3-bit number U:Op1:Op0.
func (op Operation) Code() uint8 {
	return op.U<<2 | op.Op1<<1 | op.Op0
}

// Operations is the ALU function table, ordered by unit, then by Op1 and Op0.
// Unary rows ignore y.
var Operations = [...]Operation{
	{0, 0, 0, "X AND Y", Int.And},
	{0, 1, 0, "X OR Y", Int.Or},
	{0, 0, 1, "X XOR Y", Int.Xor},
	{0, 1, 1, "NOT X", func(x, _ Int) Int { return x.Not() }},
	{1, 0, 0, "X PLUS Y", Int.Add},
	{1, 1, 0, "X PLUS 1", func(x, _ Int) Int { return x.Inc() }},
	{1, 0, 1, "X MINUS Y", Int.Sub},
	{1, 1, 1, "X MINUS 1", func(x, _ Int) Int { return x.Dec() }},
}

// Result is an operation applied to a pair of values.
type Result struct {
	Operation
	Value Int
}

// Evaluate applies every operation of the table to x and y.
// x and y must have the same width.
func Evaluate(x, y Int) []Result {
	x.mustMatch(y, "Evaluate")
	results := make([]Result, 0, len(Operations))
	for _, op := range Operations {
		results = append(results, Result{Operation: op, Value: op.Apply(x, y)})
	}
	return results
}
