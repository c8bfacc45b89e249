// Scenario-level coverage of six worked examples: a recursive numeric
// definition, Church-style pairs built from closures, an
// allocation-heavy loop, a mutable-counter closure, an
// unbound-variable failure, and lexical shadowing. Grounded on
// mindreframer-golang-devops-stuff's worker_pool_test.go for the
// Describe/Context/It shape of a ginkgo BDD suite.
package eval_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"lispwalk/pkg/ast"
	"lispwalk/pkg/env"
	"lispwalk/pkg/eval"
	"lispwalk/pkg/ierrors"
	"lispwalk/pkg/primitives"
	"lispwalk/pkg/reader"
)

// runProgram evaluates every top-level form of source in order against
// a fresh global environment and returns the last result.
func runProgram(source string) (*ast.Value, error) {
	global := primitives.MakeGlobalEnvironment()
	return runIn(global, source)
}

// runIn evaluates every top-level form of source against an existing
// environment, so a scenario can build up state across several calls.
func runIn(global *env.Environment, source string) (*ast.Value, error) {
	forms, err := reader.New(source).ReadAll()
	if err != nil {
		return nil, err
	}
	var last *ast.Value
	for _, form := range forms {
		last, err = eval.Evaluate(form, global)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

var _ = Describe("recursive numeric definition", func() {
	It("computes fib(6) and fib(10) via self-reference", func() {
		global := primitives.MakeGlobalEnvironment()
		_, err := runIn(global, `(define (fib n) (if (< n 2) n (+ (fib (- n 1)) (fib (- n 2)))))`)
		Expect(err).NotTo(HaveOccurred())

		six, err := runIn(global, `(fib 6)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(six.Num).To(Equal(int64(8)))

		ten, err := runIn(global, `(fib 10)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(ten.Num).To(Equal(int64(55)))
	})
})

var _ = Describe("Church-encoded pairs built from closures", func() {
	It("reconstructs values through cons/car/cdr alone", func() {
		result, err := runProgram(`
			(define (cons x y) (lambda (m) (m x y)))
			(define (car z) (z (lambda (p q) p)))
			(define (cdr z) (z (lambda (p q) q)))
			(car (cdr (cons 2 (cons 1 (quote ())))))
		`)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Num).To(Equal(int64(1)))
	})
})

var _ = Describe("allocation-heavy evaluation", func() {
	It("builds and rebuilds a ten-thousand-element list without failing", func() {
		global := primitives.MakeGlobalEnvironment()
		program := `
			(define (build n acc)
			  (if (= n 0) acc (build (- n 1) (cons n acc))))
			(define allocate-tons (build 10000 (quote ())))
		`
		_, err := runIn(global, program)
		Expect(err).NotTo(HaveOccurred())

		length, err := runIn(global, `(length allocate-tons)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(length.Num).To(Equal(int64(10000)))

		_, err = runIn(global, `(set! allocate-tons (quote ()))`)
		Expect(err).NotTo(HaveOccurred())

		_, err = runIn(global, program)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("closure capturing a mutable counter", func() {
	It("increments a variable held by reference across calls", func() {
		global := primitives.MakeGlobalEnvironment()
		_, err := runIn(global, `
			(define (make-counter)
			  (define n 0)
			  (lambda () (set! n (+ n 1)) n))
			(define counter (make-counter))
		`)
		Expect(err).NotTo(HaveOccurred())

		first, err := runIn(global, `(counter)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(first.Num).To(Equal(int64(1)))

		second, err := runIn(global, `(counter)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(second.Num).To(Equal(int64(2)))

		third, err := runIn(global, `(counter)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(third.Num).To(Equal(int64(3)))
	})
})

var _ = Describe("unbound variable reference", func() {
	It("aborts evaluation with an unbound-variable error", func() {
		_, err := runProgram(`(+ x 1)`)
		Expect(err).To(HaveOccurred())
		var unbound *ierrors.UnboundVariable
		Expect(err).To(BeAssignableToTypeOf(unbound))
	})
})

var _ = Describe("lexical shadowing", func() {
	It("does not let a parameter binding leak into the enclosing scope", func() {
		global := primitives.MakeGlobalEnvironment()
		env.Define("x", ast.NewNumber(99), global)

		result, err := runIn(global, `((lambda (x) x) 5)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Num).To(Equal(int64(5)))

		after, err := env.Lookup("x", global)
		Expect(err).NotTo(HaveOccurred())
		Expect(after.Num).To(Equal(int64(99)))
	})
})
