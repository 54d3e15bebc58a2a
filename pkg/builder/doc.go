/*
Package builder provides the mutable, lazily validated draft of an
automaton. A Session accumulates states, symbols, transitions, a start
state and final states in any order, without any validity invariant;
validation only happens when Finalize hands the draft to the automaton
constructor.

Removing a state or symbol cascades: every transition referencing it as
source, target or symbol is deleted.

The "export despite warnings" policy deliberately lives outside this
package. Report is a pure query listing the gaps (missing transitions,
no final states); the calling workflow decides whether to warn, block,
or proceed and call Finalize anyway. Finalize itself is always strict.

A Session is owned by a single editing workflow at a time and is not
safe for concurrent mutation.
*/
package builder
