package vm

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func runVM(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	m := New(&out)
	bag := m.Interpret(source)
	require.False(t, bag.HasErrors(), "unexpected errors for %q: %v", source, bag.Entries())
	return out.String()
}

func TestArithmeticAndPrint(t *testing.T) {
	got := runVM(t, `print 1 + 2 * 3;`)
	require.Equal(t, "7\n", got)
}

func TestStringConcatenationInterns(t *testing.T) {
	got := runVM(t, `print "foo" + "bar";`)
	require.Equal(t, "foobar\n", got)
}

func TestGlobalVariableAssignment(t *testing.T) {
	got := runVM(t, `
		var a = 1;
		a = a + 1;
		print a;
	`)
	require.Equal(t, "2\n", got)
}

func TestUndefinedGlobalIsRuntimeError(t *testing.T) {
	var out bytes.Buffer
	m := New(&out)
	bag := m.Interpret(`print undefined_var;`)
	require.True(t, bag.HasErrors(), "expected a runtime error")
	require.Contains(t, bag.Entries()[0].Error(), "Undefined variable")
}

func TestClosureCapturesEnclosingLocal(t *testing.T) {
	got := runVM(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	require.Equal(t, "1\n2\n", got)
}

func TestRecursiveFibonacci(t *testing.T) {
	got := runVM(t, `
		fun fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		print fib(10);
	`)
	require.Equal(t, "55\n", got)
}

func TestClassWithInitAndMethod(t *testing.T) {
	got := runVM(t, `
		class Counter {
			init(start) {
				this.value = start;
			}
			increment() {
				this.value = this.value + 1;
				return this.value;
			}
		}
		var c = Counter(10);
		print c.increment();
		print c.increment();
	`)
	require.Equal(t, "11\n12\n", got)
}

func TestInheritanceAndSuper(t *testing.T) {
	got := runVM(t, `
		class Animal {
			speak() {
				return "...";
			}
			describe() {
				return "I say " + this.speak();
			}
		}
		class Dog < Animal {
			speak() {
				return "woof";
			}
			describe() {
				return super.describe() + "!";
			}
		}
		print Dog().describe();
	`)
	require.Equal(t, "I say woof!\n", got)
}

func TestForLoopDesugaring(t *testing.T) {
	got := runVM(t, `
		var sum = 0;
		for (var i = 0; i < 5; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	require.Equal(t, "10\n", got)
}

func TestAddingNumberToStringIsRuntimeError(t *testing.T) {
	var out bytes.Buffer
	m := New(&out)
	bag := m.Interpret(`print 1 + "two";`)
	require.True(t, bag.HasErrors(), "expected a runtime error")
}

// 257 distinct numeric literals overflow the 1-byte constant index
// (spec.md §8's "chunk with 257 distinct constants" negative scenario).
func TestTooManyConstantsIsCompileError(t *testing.T) {
	var distinct strings.Builder
	for i := 0; i < 257; i++ {
		distinct.WriteString("print ")
		distinct.WriteString(itoaForTest(i))
		distinct.WriteString(";\n")
	}

	var out bytes.Buffer
	m := New(&out)
	bag := m.Interpret(distinct.String())
	require.True(t, bag.HasErrors(), "expected a compile error from constant pool overflow")
}

func itoaForTest(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// TestTableGrowsAndSurvivesTombstones asserts spec.md §8's hash table
// property: after an interleaving of deletes, every un-deleted key is
// still findable and every deleted key is gone. The surviving-key set
// is compared with go-cmp against the expected set so a mismatch shows
// a readable diff instead of a single failing index.
func TestTableGrowsAndSurvivesTombstones(t *testing.T) {
	table := NewTable()
	keys := make([]*ObjString, 0, 20)
	for i := 0; i < 20; i++ {
		s := internString(table, itoaForTest(i))
		keys = append(keys, s)
		table.Set(s, NumberValue(float64(i)))
	}

	// delete every other key, leaving tombstones the remaining probes
	// must still skip over to find their target.
	for i := 0; i < len(keys); i += 2 {
		require.True(t, table.Delete(keys[i]), "expected Delete to find key %d", i)
	}

	var survivingWant, survivingGot []string
	for i := 1; i < len(keys); i += 2 {
		v, ok := table.Get(keys[i])
		survivingWant = append(survivingWant, itoaForTest(i))
		if ok {
			survivingGot = append(survivingGot, itoaForTest(int(v.AsNumber())))
		}
	}
	sort.Strings(survivingWant)
	sort.Strings(survivingGot)
	if diff := cmp.Diff(survivingWant, survivingGot); diff != "" {
		t.Fatalf("surviving key set mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < len(keys); i += 2 {
		_, ok := table.Get(keys[i])
		require.False(t, ok, "expected deleted key %d to be gone", i)
	}
}

func TestInterningReturnsSamePointer(t *testing.T) {
	table := NewTable()
	a := internString(table, "hello")
	b := internString(table, "hello")
	require.Same(t, a, b, "expected interning to return the same *ObjString for equal content")
}

func TestDisassembleDoesNotPanic(t *testing.T) {
	fn, bag := Compile(`
		fun add(a, b) { return a + b; }
		print add(1, 2);
	`, NewTable())
	require.False(t, bag.HasErrors(), "unexpected compile errors: %v", bag.Entries())
	var out bytes.Buffer
	Disassemble(&out, fn.Chunk, "script")
	require.Contains(t, out.String(), "OP_CLOSURE")
}
