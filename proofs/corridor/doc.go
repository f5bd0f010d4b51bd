package main

/*

# Abstract

The corridor proof explores how far a terminal can be pushed as a first
person display:
- a 2D level of wall segments and boxes is rendered by casting one ray per
  terminal column, with two pixels stacked in every cell using the upper half
  block glyph
- walls are shaded by distance, and darkened where they end so that corners
  read as corners
- a braille minimap shows the level, the viewer and the view cone

# Controls

Terminals only report key presses, so a key counts as held for a short while
after each press; auto-repeat keeps it held. The mouse can be "captured" by
clicking in the view, after which horizontal motion turns the viewer until
Escape releases it.

# The hunter

Levels may place an enemy. It is steered by a single layer perceptron of
twelve weights, looking at where the player is relative to its heading and
how far away. There is no training: every few seconds its recent mean
distance to the player is compared with its best, the better weights are
kept, and they are randomly mutated again. Catching the player ends the
epoch early and beats any epoch without a catch; quicker catches rank higher.

# Levels

Levels are YAML, given either as explicit walls and boxes or as a grid of
characters; see the built-in levels. With --watch, a level file is reloaded
as it is edited.

*/
