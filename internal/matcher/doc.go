// Package matcher reconciles talks with videos and slide decks.
//
// Matching threads an immutable WorkingSet through a fixed list of passes.
// Each pass removes what it matched from the pools, so later and looser
// passes only see what stricter ones left behind:
//
//  1. override: curated pairs; the video leaves the pool, the talk stays
//  2. exact_title: exactly one video with the talk's title slug
//  3. time_slot: showcase stage plus time slot, disambiguated by theme
//  4. presenter: presenter line of the video description
//  5. multi_title: several videos sharing the title slug all match
//
// Passes 3 and 4 are Rule implementations run by RulePass, so the text
// conventions of one event can be replaced without touching the order.
//
// The SlideMatcher runs once before the video passes and works on its own
// copy of the scoped talks.
package matcher
