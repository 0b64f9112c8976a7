// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks tracks the lifecycle of background jobs.
//
// A Task is created Queued by whoever spawns the job, moved to Running by
// the job goroutine, and finished with Complete or Fail. Reads are safe from
// any goroutine, so the render loop can show progress without coordination.
//
//	task := tasks.New("Unicode import")
//	go func() {
//	    _ = task.Start()
//	    if err := run(); err != nil {
//	        _ = task.Fail(err)
//	        return
//	    }
//	    _ = task.Complete()
//	}()
package tasks
