// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pusconfig

import "testing"

func TestResolveTm_UsesDefaultWhenUnspecified(t *testing.T) {
	defer SetDefaultPusTmVersion(Current().DefaultPusTmVersion)
	SetDefaultPusTmVersion(PusVersionA)
	if got := ResolveTm(PusVersionUnspecified); got != PusVersionA {
		t.Errorf("ResolveTm(Unspecified) = %v; want PusVersionA", got)
	}
	if got := ResolveTm(PusVersionC); got != PusVersionC {
		t.Errorf("ResolveTm(C) = %v; want PusVersionC (explicit value must win)", got)
	}
}

func TestDefaultSnapshot_IsPusC(t *testing.T) {
	// Fresh process default is PUS-C per spec §4.4 "defaults to PUS_C".
	v := PusVersion(0)
	if v != PusVersionUnspecified {
		t.Fatalf("sanity: PusVersionUnspecified must be the zero value")
	}
	snap := Current()
	if snap.DefaultPusTmVersion != PusVersionC {
		t.Errorf("DefaultPusTmVersion = %v; want PusVersionC", snap.DefaultPusTmVersion)
	}
	if snap.DefaultPusTcVersion != PusVersionC {
		t.Errorf("DefaultPusTcVersion = %v; want PusVersionC", snap.DefaultPusTcVersion)
	}
}

func TestSetDefaultApids(t *testing.T) {
	defer func() {
		SetDefaultTmApid(0)
		SetDefaultTcApid(0)
	}()
	SetDefaultTmApid(0x1AB)
	SetDefaultTcApid(0x1CD)
	snap := Current()
	if snap.DefaultTmApid != 0x1AB {
		t.Errorf("DefaultTmApid = %#x; want 0x1AB", snap.DefaultTmApid)
	}
	if snap.DefaultTcApid != 0x1CD {
		t.Errorf("DefaultTcApid = %#x; want 0x1CD", snap.DefaultTcApid)
	}
}
