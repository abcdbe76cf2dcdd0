/* Package main: goforth -- a deliberately small FORTH

FORTH systems stay small because only a handful of primitives need native
implementations--everything else can be defined in FORTH itself, as words
compiled out of other words.  goforth is an experiment in how little
machinery that actually takes: a dictionary, two stacks of 16 bit cells, an
outer interpreter that walks tokens, and an inner interpreter that walks
compiled definitions.

It claims no conformance to any FORTH standard.  The word set is just large
enough to be self-hosting: stack shuffles, 16 bit wraparound arithmetic,
comparisons in the classic all-bits-set/zero boolean encoding, VARIABLE and
CONSTANT over a bounds-checked cell heap, colon definitions, and IF ELSE
THEN / BEGIN UNTIL built as immediate words that compile branch markers.

The interpreter core never touches a terminal.  A shell hands it one line at
a time and supplies a sink for the output events (runes from EMIT, numbers
from dot, an ok or error acknowledgement per line) and a key source for KEY.
The bundled shell is a readline REPL; piped input works too:

	$ echo '5 3 + .' | goforth
	8 ok

A session:

	: SQUARE DUP * ;
	ok
	12 SQUARE .
	144 ok
	VARIABLE X  42 X !  X @ .
	42 ok
	200 SQUARE .
	-25536 ok

(That last result is not a bug: cells are 16 bits and 200 SQUARE wraps.
You broke it, you fix it.)

Redefinition shadows rather than replaces: words compiled against the old
definition keep it, because references are bound at compile time.  Errors
abort the line they happen on and nothing else--the dictionary is untouched
and the stacks keep whatever the line managed to do, in the best interactive
FORTH tradition.
*/
package main
