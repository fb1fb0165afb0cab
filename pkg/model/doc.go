// Package model defines the form definitions shared by the terminal
// collector, the block builder and the generator. A FormModel lists the
// fields a modder fills in (with `visibleWhen` toggle rules mirroring the
// enabled/disabled widgets of a desktop form) and the ordered properties that
// make up the generated item block. Property names default to the
// UpperCamelCase form of their source field key so definitions stay short:
// `foodType` emits `FoodType = ...`.
package model
