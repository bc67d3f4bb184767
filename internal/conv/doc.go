// Package conv provides checked integer conversions for sizes read from
// record headers and widths handed to fixed-width formats.
package conv
