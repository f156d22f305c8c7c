// Package qubo implements an unconstrained binary quadratic model and
// a penalty compiler turning linear equality and inequality
// constraints into quadratic energy contributions. Inequalities are
// closed with slack variables in binary expansion, so a constraint
// with bound gap R costs ceil(log2(R+1)) extra binary variables.
package qubo
