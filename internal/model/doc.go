// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The YAPLC Authors
//
// Package model is the in-memory representation of a YAPLC location template:
// the hardware I/O points ("locations") a target offers, organised into nested
// and possibly parametrized groups.
//
// # Core Concepts
//
//   - Parameter: the value domain of one parameter. A fixed Number, an
//     inclusive integer Range or an ordered list of Items. A parameter is
//     named when it was written as [name:value].
//
//   - Location: a leaf declaration (LOC or ULOC). It has a location type
//     (input, output, memory), a data type (bit, byte, word, ...), an ordered
//     list of parameters and an optional descriptive name.
//
//   - Group: a named container (GRP or UGRP) identified by a single id
//     parameter. Groups hold locations and subgroups.
//
//   - Template: the arena owning every group of one parsed file. Groups refer
//     to their parent and children by GroupID handles into the arena, so the
//     tree carries no pointer cycles. The template is read-only once the parser
//     hands it out.
//
// A group or location is parametrized when any of its parameters is named.
// Parametrized nodes stand for many concrete instances and have to be
// expanded (see package expand) before they map to real addresses.
package model
