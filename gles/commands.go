// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gles

import (
	"context"

	"github.com/google/gpucmd/cmdbuf"
)

// Command ids of the GLES decoder. Ids below cmdbuf.NumCommonCommands are
// the common commands.
const (
	CmdActiveTexture uint32 = cmdbuf.NumCommonCommands + iota
	CmdAttachShader
	CmdBeginQueryEXT
	CmdBindAttribLocationBucket
	CmdBindBuffer
	CmdBindBufferBase
	CmdBindFramebuffer
	CmdBindRenderbuffer
	CmdBindSampler
	CmdBindTexture
	CmdBindTransformFeedback
	CmdBindVertexArrayOES
	CmdBlendColor
	CmdBlendEquationSeparate
	CmdBlendFuncSeparate
	CmdBlitFramebufferCHROMIUM
	CmdBufferData
	CmdBufferSubData
	CmdCheckFramebufferStatus
	CmdClear
	CmdClearColor
	CmdClearDepthf
	CmdClearStencil
	CmdClientWaitSync
	CmdColorMask
	CmdCompileShader
	CmdConsumeTextureCHROMIUMImmediate
	CmdCopyTexImage2D
	CmdCreateAndConsumeTextureINTERNALImmediate
	CmdCreateProgram
	CmdCreateShader
	CmdCullFace
	CmdDeleteBuffersImmediate
	CmdDeleteFramebuffersImmediate
	CmdDeleteProgram
	CmdDeleteQueriesEXTImmediate
	CmdDeleteRenderbuffersImmediate
	CmdDeleteSamplersImmediate
	CmdDeleteShader
	CmdDeleteSync
	CmdDeleteTexturesImmediate
	CmdDeleteTransformFeedbacksImmediate
	CmdDeleteVertexArraysOESImmediate
	CmdDepthFunc
	CmdDepthMask
	CmdDepthRangef
	CmdDescheduleUntilFinishedCHROMIUM
	CmdDetachShader
	CmdDisable
	CmdDisableVertexAttribArray
	CmdDrawArrays
	CmdDrawArraysInstancedANGLE
	CmdDrawBuffersEXTImmediate
	CmdDrawElements
	CmdDrawElementsInstancedANGLE
	CmdEnable
	CmdEnableVertexAttribArray
	CmdEndQueryEXT
	CmdFenceSync
	CmdFinish
	CmdFlush
	CmdFramebufferRenderbuffer
	CmdFramebufferTexture2D
	CmdFrontFace
	CmdGenBuffersImmediate
	CmdGenFramebuffersImmediate
	CmdGenQueriesEXTImmediate
	CmdGenRenderbuffersImmediate
	CmdGenSamplersImmediate
	CmdGenTexturesImmediate
	CmdGenTransformFeedbacksImmediate
	CmdGenVertexArraysOESImmediate
	CmdGenerateMipmap
	CmdGetActiveAttrib
	CmdGetActiveUniform
	CmdGetAttribLocation
	CmdGetBooleanv
	CmdGetError
	CmdGetIntegerv
	CmdGetProgramInfoLog
	CmdGetProgramiv
	CmdGetShaderInfoLog
	CmdGetShaderiv
	CmdGetUniformLocation
	CmdHint
	CmdInsertFenceSyncCHROMIUM
	CmdIsBuffer
	CmdIsEnabled
	CmdIsFramebuffer
	CmdIsProgram
	CmdIsRenderbuffer
	CmdIsShader
	CmdIsTexture
	CmdLineWidth
	CmdLinkProgram
	CmdLoseContextCHROMIUM
	CmdPixelStorei
	CmdPolygonOffset
	CmdProduceTextureDirectCHROMIUMImmediate
	CmdQueryCounterEXT
	CmdReadPixels
	CmdRenderbufferStorage
	CmdRenderbufferStorageMultisample
	CmdResizeCHROMIUM
	CmdReturnFrontBufferCHROMIUMImmediate
	CmdSampleCoverage
	CmdSamplerParameteri
	CmdScissor
	CmdShaderSourceBucket
	CmdStencilFuncSeparate
	CmdStencilMaskSeparate
	CmdStencilOpSeparate
	CmdSwapBuffers
	CmdTakeFrontBufferCHROMIUMImmediate
	CmdTexImage2D
	CmdTexParameterf
	CmdTexParameteri
	CmdTexStorage2DEXT
	CmdTexSubImage2D
	CmdUniform1f
	CmdUniform1i
	CmdUniform1ivImmediate
	CmdUniform4f
	CmdUniform4fvImmediate
	CmdUniform4i
	CmdUniformMatrix4fvImmediate
	CmdUseProgram
	CmdValidateProgram
	CmdVertexAttrib4f
	CmdVertexAttribDivisorANGLE
	CmdVertexAttribI4i
	CmdVertexAttribI4ui
	CmdVertexAttribIPointer
	CmdVertexAttribPointer
	CmdViewport
	CmdWaitSync
	CmdWaitSyncTokenCHROMIUM
	lastCommand
)

const (
	firstCommand = CmdActiveTexture
	numCommands  = lastCommand - firstCommand
)

type handler func(d *Decoder, ctx context.Context, immSize uint32, args []uint32) cmdbuf.Error

// commandInfo is the dispatch entry of one command.
type commandInfo struct {
	handler  handler
	argFlags cmdbuf.ArgFlags
	// traceLevel is the lowest decoder trace level at which the command is
	// traced. Chatty state commands have the highest levels.
	traceLevel int
	argCount   uint32
}

var commandInfos = [numCommands]commandInfo{
	CmdActiveTexture - firstCommand:                            {(*Decoder).handleActiveTexture, cmdbuf.Fixed, 3, 1},
	CmdAttachShader - firstCommand:                             {(*Decoder).handleAttachShader, cmdbuf.Fixed, 3, 2},
	CmdBeginQueryEXT - firstCommand:                            {(*Decoder).handleBeginQueryEXT, cmdbuf.Fixed, 2, 5},
	CmdBindAttribLocationBucket - firstCommand:                 {(*Decoder).handleBindAttribLocationBucket, cmdbuf.Fixed, 3, 3},
	CmdBindBuffer - firstCommand:                               {(*Decoder).handleBindBuffer, cmdbuf.Fixed, 3, 2},
	CmdBindBufferBase - firstCommand:                           {(*Decoder).handleBindBufferBase, cmdbuf.Fixed, 3, 3},
	CmdBindFramebuffer - firstCommand:                          {(*Decoder).handleBindFramebuffer, cmdbuf.Fixed, 3, 2},
	CmdBindRenderbuffer - firstCommand:                         {(*Decoder).handleBindRenderbuffer, cmdbuf.Fixed, 3, 2},
	CmdBindSampler - firstCommand:                              {(*Decoder).handleBindSampler, cmdbuf.Fixed, 3, 2},
	CmdBindTexture - firstCommand:                              {(*Decoder).handleBindTexture, cmdbuf.Fixed, 3, 2},
	CmdBindTransformFeedback - firstCommand:                    {(*Decoder).handleBindTransformFeedback, cmdbuf.Fixed, 3, 2},
	CmdBindVertexArrayOES - firstCommand:                       {(*Decoder).handleBindVertexArrayOES, cmdbuf.Fixed, 3, 1},
	CmdBlendColor - firstCommand:                               {(*Decoder).handleBlendColor, cmdbuf.Fixed, 3, 4},
	CmdBlendEquationSeparate - firstCommand:                    {(*Decoder).handleBlendEquationSeparate, cmdbuf.Fixed, 3, 2},
	CmdBlendFuncSeparate - firstCommand:                        {(*Decoder).handleBlendFuncSeparate, cmdbuf.Fixed, 3, 4},
	CmdBlitFramebufferCHROMIUM - firstCommand:                  {(*Decoder).handleBlitFramebufferCHROMIUM, cmdbuf.Fixed, 1, 10},
	CmdBufferData - firstCommand:                               {(*Decoder).handleBufferData, cmdbuf.Fixed, 2, 5},
	CmdBufferSubData - firstCommand:                            {(*Decoder).handleBufferSubData, cmdbuf.Fixed, 2, 5},
	CmdCheckFramebufferStatus - firstCommand:                   {(*Decoder).handleCheckFramebufferStatus, cmdbuf.Fixed, 3, 3},
	CmdClear - firstCommand:                                    {(*Decoder).handleClear, cmdbuf.Fixed, 1, 1},
	CmdClearColor - firstCommand:                               {(*Decoder).handleClearColor, cmdbuf.Fixed, 3, 4},
	CmdClearDepthf - firstCommand:                              {(*Decoder).handleClearDepthf, cmdbuf.Fixed, 3, 1},
	CmdClearStencil - firstCommand:                             {(*Decoder).handleClearStencil, cmdbuf.Fixed, 3, 1},
	CmdClientWaitSync - firstCommand:                           {(*Decoder).handleClientWaitSync, cmdbuf.Fixed, 1, 6},
	CmdColorMask - firstCommand:                                {(*Decoder).handleColorMask, cmdbuf.Fixed, 3, 4},
	CmdCompileShader - firstCommand:                            {(*Decoder).handleCompileShader, cmdbuf.Fixed, 1, 1},
	CmdConsumeTextureCHROMIUMImmediate - firstCommand:          {(*Decoder).handleConsumeTextureCHROMIUMImmediate, cmdbuf.AtLeastN, 2, 1},
	CmdCopyTexImage2D - firstCommand:                           {(*Decoder).handleCopyTexImage2D, cmdbuf.Fixed, 2, 7},
	CmdCreateAndConsumeTextureINTERNALImmediate - firstCommand: {(*Decoder).handleCreateAndConsumeTextureINTERNALImmediate, cmdbuf.AtLeastN, 2, 2},
	CmdCreateProgram - firstCommand:                            {(*Decoder).handleCreateProgram, cmdbuf.Fixed, 3, 1},
	CmdCreateShader - firstCommand:                             {(*Decoder).handleCreateShader, cmdbuf.Fixed, 3, 2},
	CmdCullFace - firstCommand:                                 {(*Decoder).handleCullFace, cmdbuf.Fixed, 3, 1},
	CmdDeleteBuffersImmediate - firstCommand:                   {(*Decoder).handleDeleteBuffersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteFramebuffersImmediate - firstCommand:              {(*Decoder).handleDeleteFramebuffersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteProgram - firstCommand:                            {(*Decoder).handleDeleteProgram, cmdbuf.Fixed, 3, 1},
	CmdDeleteQueriesEXTImmediate - firstCommand:                {(*Decoder).handleDeleteQueriesEXTImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteRenderbuffersImmediate - firstCommand:             {(*Decoder).handleDeleteRenderbuffersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteSamplersImmediate - firstCommand:                  {(*Decoder).handleDeleteSamplersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteShader - firstCommand:                             {(*Decoder).handleDeleteShader, cmdbuf.Fixed, 3, 1},
	CmdDeleteSync - firstCommand:                               {(*Decoder).handleDeleteSync, cmdbuf.Fixed, 3, 1},
	CmdDeleteTexturesImmediate - firstCommand:                  {(*Decoder).handleDeleteTexturesImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteTransformFeedbacksImmediate - firstCommand:        {(*Decoder).handleDeleteTransformFeedbacksImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDeleteVertexArraysOESImmediate - firstCommand:           {(*Decoder).handleDeleteVertexArraysOESImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDepthFunc - firstCommand:                                {(*Decoder).handleDepthFunc, cmdbuf.Fixed, 3, 1},
	CmdDepthMask - firstCommand:                                {(*Decoder).handleDepthMask, cmdbuf.Fixed, 3, 1},
	CmdDepthRangef - firstCommand:                              {(*Decoder).handleDepthRangef, cmdbuf.Fixed, 3, 2},
	CmdDescheduleUntilFinishedCHROMIUM - firstCommand:          {(*Decoder).handleDescheduleUntilFinishedCHROMIUM, cmdbuf.Fixed, 1, 0},
	CmdDetachShader - firstCommand:                             {(*Decoder).handleDetachShader, cmdbuf.Fixed, 3, 2},
	CmdDisable - firstCommand:                                  {(*Decoder).handleDisable, cmdbuf.Fixed, 3, 1},
	CmdDisableVertexAttribArray - firstCommand:                 {(*Decoder).handleDisableVertexAttribArray, cmdbuf.Fixed, 3, 1},
	CmdDrawArrays - firstCommand:                               {(*Decoder).handleDrawArrays, cmdbuf.Fixed, 2, 3},
	CmdDrawArraysInstancedANGLE - firstCommand:                 {(*Decoder).handleDrawArraysInstancedANGLE, cmdbuf.Fixed, 2, 4},
	CmdDrawBuffersEXTImmediate - firstCommand:                  {(*Decoder).handleDrawBuffersEXTImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdDrawElements - firstCommand:                             {(*Decoder).handleDrawElements, cmdbuf.Fixed, 2, 4},
	CmdDrawElementsInstancedANGLE - firstCommand:               {(*Decoder).handleDrawElementsInstancedANGLE, cmdbuf.Fixed, 2, 5},
	CmdEnable - firstCommand:                                   {(*Decoder).handleEnable, cmdbuf.Fixed, 3, 1},
	CmdEnableVertexAttribArray - firstCommand:                  {(*Decoder).handleEnableVertexAttribArray, cmdbuf.Fixed, 3, 1},
	CmdEndQueryEXT - firstCommand:                              {(*Decoder).handleEndQueryEXT, cmdbuf.Fixed, 2, 2},
	CmdFenceSync - firstCommand:                                {(*Decoder).handleFenceSync, cmdbuf.Fixed, 2, 1},
	CmdFinish - firstCommand:                                   {(*Decoder).handleFinish, cmdbuf.Fixed, 1, 0},
	CmdFlush - firstCommand:                                    {(*Decoder).handleFlush, cmdbuf.Fixed, 1, 0},
	CmdFramebufferRenderbuffer - firstCommand:                  {(*Decoder).handleFramebufferRenderbuffer, cmdbuf.Fixed, 3, 4},
	CmdFramebufferTexture2D - firstCommand:                     {(*Decoder).handleFramebufferTexture2D, cmdbuf.Fixed, 3, 5},
	CmdFrontFace - firstCommand:                                {(*Decoder).handleFrontFace, cmdbuf.Fixed, 3, 1},
	CmdGenBuffersImmediate - firstCommand:                      {(*Decoder).handleGenBuffersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenFramebuffersImmediate - firstCommand:                 {(*Decoder).handleGenFramebuffersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenQueriesEXTImmediate - firstCommand:                   {(*Decoder).handleGenQueriesEXTImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenRenderbuffersImmediate - firstCommand:                {(*Decoder).handleGenRenderbuffersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenSamplersImmediate - firstCommand:                     {(*Decoder).handleGenSamplersImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenTexturesImmediate - firstCommand:                     {(*Decoder).handleGenTexturesImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenTransformFeedbacksImmediate - firstCommand:           {(*Decoder).handleGenTransformFeedbacksImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenVertexArraysOESImmediate - firstCommand:              {(*Decoder).handleGenVertexArraysOESImmediate, cmdbuf.AtLeastN, 3, 1},
	CmdGenerateMipmap - firstCommand:                           {(*Decoder).handleGenerateMipmap, cmdbuf.Fixed, 2, 1},
	CmdGetActiveAttrib - firstCommand:                          {(*Decoder).handleGetActiveAttrib, cmdbuf.Fixed, 3, 5},
	CmdGetActiveUniform - firstCommand:                         {(*Decoder).handleGetActiveUniform, cmdbuf.Fixed, 3, 5},
	CmdGetAttribLocation - firstCommand:                        {(*Decoder).handleGetAttribLocation, cmdbuf.Fixed, 3, 4},
	CmdGetBooleanv - firstCommand:                              {(*Decoder).handleGetBooleanv, cmdbuf.Fixed, 3, 3},
	CmdGetError - firstCommand:                                 {(*Decoder).handleGetError, cmdbuf.Fixed, 3, 2},
	CmdGetIntegerv - firstCommand:                              {(*Decoder).handleGetIntegerv, cmdbuf.Fixed, 3, 3},
	CmdGetProgramInfoLog - firstCommand:                        {(*Decoder).handleGetProgramInfoLog, cmdbuf.Fixed, 3, 2},
	CmdGetProgramiv - firstCommand:                             {(*Decoder).handleGetProgramiv, cmdbuf.Fixed, 3, 4},
	CmdGetShaderInfoLog - firstCommand:                         {(*Decoder).handleGetShaderInfoLog, cmdbuf.Fixed, 3, 2},
	CmdGetShaderiv - firstCommand:                              {(*Decoder).handleGetShaderiv, cmdbuf.Fixed, 3, 4},
	CmdGetUniformLocation - firstCommand:                       {(*Decoder).handleGetUniformLocation, cmdbuf.Fixed, 3, 4},
	CmdHint - firstCommand:                                     {(*Decoder).handleHint, cmdbuf.Fixed, 3, 2},
	CmdInsertFenceSyncCHROMIUM - firstCommand:                  {(*Decoder).handleInsertFenceSyncCHROMIUM, cmdbuf.Fixed, 2, 2},
	CmdIsBuffer - firstCommand:                                 {(*Decoder).handleIsBuffer, cmdbuf.Fixed, 3, 3},
	CmdIsEnabled - firstCommand:                                {(*Decoder).handleIsEnabled, cmdbuf.Fixed, 3, 3},
	CmdIsFramebuffer - firstCommand:                            {(*Decoder).handleIsFramebuffer, cmdbuf.Fixed, 3, 3},
	CmdIsProgram - firstCommand:                                {(*Decoder).handleIsProgram, cmdbuf.Fixed, 3, 3},
	CmdIsRenderbuffer - firstCommand:                           {(*Decoder).handleIsRenderbuffer, cmdbuf.Fixed, 3, 3},
	CmdIsShader - firstCommand:                                 {(*Decoder).handleIsShader, cmdbuf.Fixed, 3, 3},
	CmdIsTexture - firstCommand:                                {(*Decoder).handleIsTexture, cmdbuf.Fixed, 3, 3},
	CmdLineWidth - firstCommand:                                {(*Decoder).handleLineWidth, cmdbuf.Fixed, 3, 1},
	CmdLinkProgram - firstCommand:                              {(*Decoder).handleLinkProgram, cmdbuf.Fixed, 1, 1},
	CmdLoseContextCHROMIUM - firstCommand:                      {(*Decoder).handleLoseContextCHROMIUM, cmdbuf.Fixed, 1, 2},
	CmdPixelStorei - firstCommand:                              {(*Decoder).handlePixelStorei, cmdbuf.Fixed, 3, 2},
	CmdPolygonOffset - firstCommand:                            {(*Decoder).handlePolygonOffset, cmdbuf.Fixed, 3, 2},
	CmdProduceTextureDirectCHROMIUMImmediate - firstCommand:    {(*Decoder).handleProduceTextureDirectCHROMIUMImmediate, cmdbuf.AtLeastN, 2, 1},
	CmdQueryCounterEXT - firstCommand:                          {(*Decoder).handleQueryCounterEXT, cmdbuf.Fixed, 2, 5},
	CmdReadPixels - firstCommand:                               {(*Decoder).handleReadPixels, cmdbuf.Fixed, 1, 11},
	CmdRenderbufferStorage - firstCommand:                      {(*Decoder).handleRenderbufferStorage, cmdbuf.Fixed, 2, 4},
	CmdRenderbufferStorageMultisample - firstCommand:           {(*Decoder).handleRenderbufferStorageMultisample, cmdbuf.Fixed, 2, 5},
	CmdResizeCHROMIUM - firstCommand:                           {(*Decoder).handleResizeCHROMIUM, cmdbuf.Fixed, 1, 4},
	CmdReturnFrontBufferCHROMIUMImmediate - firstCommand:       {(*Decoder).handleReturnFrontBufferCHROMIUMImmediate, cmdbuf.AtLeastN, 1, 1},
	CmdSampleCoverage - firstCommand:                           {(*Decoder).handleSampleCoverage, cmdbuf.Fixed, 3, 2},
	CmdSamplerParameteri - firstCommand:                        {(*Decoder).handleSamplerParameteri, cmdbuf.Fixed, 3, 3},
	CmdScissor - firstCommand:                                  {(*Decoder).handleScissor, cmdbuf.Fixed, 3, 4},
	CmdShaderSourceBucket - firstCommand:                       {(*Decoder).handleShaderSourceBucket, cmdbuf.Fixed, 3, 2},
	CmdStencilFuncSeparate - firstCommand:                      {(*Decoder).handleStencilFuncSeparate, cmdbuf.Fixed, 3, 4},
	CmdStencilMaskSeparate - firstCommand:                      {(*Decoder).handleStencilMaskSeparate, cmdbuf.Fixed, 3, 2},
	CmdStencilOpSeparate - firstCommand:                        {(*Decoder).handleStencilOpSeparate, cmdbuf.Fixed, 3, 4},
	CmdSwapBuffers - firstCommand:                              {(*Decoder).handleSwapBuffers, cmdbuf.Fixed, 0, 0},
	CmdTakeFrontBufferCHROMIUMImmediate - firstCommand:         {(*Decoder).handleTakeFrontBufferCHROMIUMImmediate, cmdbuf.AtLeastN, 1, 0},
	CmdTexImage2D - firstCommand:                               {(*Decoder).handleTexImage2D, cmdbuf.Fixed, 2, 9},
	CmdTexParameterf - firstCommand:                            {(*Decoder).handleTexParameterf, cmdbuf.Fixed, 3, 3},
	CmdTexParameteri - firstCommand:                            {(*Decoder).handleTexParameteri, cmdbuf.Fixed, 3, 3},
	CmdTexStorage2DEXT - firstCommand:                          {(*Decoder).handleTexStorage2DEXT, cmdbuf.Fixed, 2, 5},
	CmdTexSubImage2D - firstCommand:                            {(*Decoder).handleTexSubImage2D, cmdbuf.Fixed, 2, 10},
	CmdUniform1f - firstCommand:                                {(*Decoder).handleUniform1f, cmdbuf.Fixed, 3, 2},
	CmdUniform1i - firstCommand:                                {(*Decoder).handleUniform1i, cmdbuf.Fixed, 3, 2},
	CmdUniform1ivImmediate - firstCommand:                      {(*Decoder).handleUniform1ivImmediate, cmdbuf.AtLeastN, 3, 2},
	CmdUniform4f - firstCommand:                                {(*Decoder).handleUniform4f, cmdbuf.Fixed, 3, 5},
	CmdUniform4fvImmediate - firstCommand:                      {(*Decoder).handleUniform4fvImmediate, cmdbuf.AtLeastN, 3, 2},
	CmdUniform4i - firstCommand:                                {(*Decoder).handleUniform4i, cmdbuf.Fixed, 3, 5},
	CmdUniformMatrix4fvImmediate - firstCommand:                {(*Decoder).handleUniformMatrix4fvImmediate, cmdbuf.AtLeastN, 3, 2},
	CmdUseProgram - firstCommand:                               {(*Decoder).handleUseProgram, cmdbuf.Fixed, 3, 1},
	CmdValidateProgram - firstCommand:                          {(*Decoder).handleValidateProgram, cmdbuf.Fixed, 2, 1},
	CmdVertexAttrib4f - firstCommand:                           {(*Decoder).handleVertexAttrib4f, cmdbuf.Fixed, 3, 5},
	CmdVertexAttribDivisorANGLE - firstCommand:                 {(*Decoder).handleVertexAttribDivisorANGLE, cmdbuf.Fixed, 3, 2},
	CmdVertexAttribI4i - firstCommand:                          {(*Decoder).handleVertexAttribI4i, cmdbuf.Fixed, 3, 5},
	CmdVertexAttribI4ui - firstCommand:                         {(*Decoder).handleVertexAttribI4ui, cmdbuf.Fixed, 3, 5},
	CmdVertexAttribIPointer - firstCommand:                     {(*Decoder).handleVertexAttribIPointer, cmdbuf.Fixed, 3, 5},
	CmdVertexAttribPointer - firstCommand:                      {(*Decoder).handleVertexAttribPointer, cmdbuf.Fixed, 3, 6},
	CmdViewport - firstCommand:                                 {(*Decoder).handleViewport, cmdbuf.Fixed, 3, 4},
	CmdWaitSync - firstCommand:                                 {(*Decoder).handleWaitSync, cmdbuf.Fixed, 2, 4},
	CmdWaitSyncTokenCHROMIUM - firstCommand:                    {(*Decoder).handleWaitSyncTokenCHROMIUM, cmdbuf.Fixed, 1, 5},
}

var commandNames = [numCommands]string{
	CmdActiveTexture - firstCommand:                            "ActiveTexture",
	CmdAttachShader - firstCommand:                             "AttachShader",
	CmdBeginQueryEXT - firstCommand:                            "BeginQueryEXT",
	CmdBindAttribLocationBucket - firstCommand:                 "BindAttribLocationBucket",
	CmdBindBuffer - firstCommand:                               "BindBuffer",
	CmdBindBufferBase - firstCommand:                           "BindBufferBase",
	CmdBindFramebuffer - firstCommand:                          "BindFramebuffer",
	CmdBindRenderbuffer - firstCommand:                         "BindRenderbuffer",
	CmdBindSampler - firstCommand:                              "BindSampler",
	CmdBindTexture - firstCommand:                              "BindTexture",
	CmdBindTransformFeedback - firstCommand:                    "BindTransformFeedback",
	CmdBindVertexArrayOES - firstCommand:                       "BindVertexArrayOES",
	CmdBlendColor - firstCommand:                               "BlendColor",
	CmdBlendEquationSeparate - firstCommand:                    "BlendEquationSeparate",
	CmdBlendFuncSeparate - firstCommand:                        "BlendFuncSeparate",
	CmdBlitFramebufferCHROMIUM - firstCommand:                  "BlitFramebufferCHROMIUM",
	CmdBufferData - firstCommand:                               "BufferData",
	CmdBufferSubData - firstCommand:                            "BufferSubData",
	CmdCheckFramebufferStatus - firstCommand:                   "CheckFramebufferStatus",
	CmdClear - firstCommand:                                    "Clear",
	CmdClearColor - firstCommand:                               "ClearColor",
	CmdClearDepthf - firstCommand:                              "ClearDepthf",
	CmdClearStencil - firstCommand:                             "ClearStencil",
	CmdClientWaitSync - firstCommand:                           "ClientWaitSync",
	CmdColorMask - firstCommand:                                "ColorMask",
	CmdCompileShader - firstCommand:                            "CompileShader",
	CmdConsumeTextureCHROMIUMImmediate - firstCommand:          "ConsumeTextureCHROMIUMImmediate",
	CmdCopyTexImage2D - firstCommand:                           "CopyTexImage2D",
	CmdCreateAndConsumeTextureINTERNALImmediate - firstCommand: "CreateAndConsumeTextureINTERNALImmediate",
	CmdCreateProgram - firstCommand:                            "CreateProgram",
	CmdCreateShader - firstCommand:                             "CreateShader",
	CmdCullFace - firstCommand:                                 "CullFace",
	CmdDeleteBuffersImmediate - firstCommand:                   "DeleteBuffersImmediate",
	CmdDeleteFramebuffersImmediate - firstCommand:              "DeleteFramebuffersImmediate",
	CmdDeleteProgram - firstCommand:                            "DeleteProgram",
	CmdDeleteQueriesEXTImmediate - firstCommand:                "DeleteQueriesEXTImmediate",
	CmdDeleteRenderbuffersImmediate - firstCommand:             "DeleteRenderbuffersImmediate",
	CmdDeleteSamplersImmediate - firstCommand:                  "DeleteSamplersImmediate",
	CmdDeleteShader - firstCommand:                             "DeleteShader",
	CmdDeleteSync - firstCommand:                               "DeleteSync",
	CmdDeleteTexturesImmediate - firstCommand:                  "DeleteTexturesImmediate",
	CmdDeleteTransformFeedbacksImmediate - firstCommand:        "DeleteTransformFeedbacksImmediate",
	CmdDeleteVertexArraysOESImmediate - firstCommand:           "DeleteVertexArraysOESImmediate",
	CmdDepthFunc - firstCommand:                                "DepthFunc",
	CmdDepthMask - firstCommand:                                "DepthMask",
	CmdDepthRangef - firstCommand:                              "DepthRangef",
	CmdDescheduleUntilFinishedCHROMIUM - firstCommand:          "DescheduleUntilFinishedCHROMIUM",
	CmdDetachShader - firstCommand:                             "DetachShader",
	CmdDisable - firstCommand:                                  "Disable",
	CmdDisableVertexAttribArray - firstCommand:                 "DisableVertexAttribArray",
	CmdDrawArrays - firstCommand:                               "DrawArrays",
	CmdDrawArraysInstancedANGLE - firstCommand:                 "DrawArraysInstancedANGLE",
	CmdDrawBuffersEXTImmediate - firstCommand:                  "DrawBuffersEXTImmediate",
	CmdDrawElements - firstCommand:                             "DrawElements",
	CmdDrawElementsInstancedANGLE - firstCommand:               "DrawElementsInstancedANGLE",
	CmdEnable - firstCommand:                                   "Enable",
	CmdEnableVertexAttribArray - firstCommand:                  "EnableVertexAttribArray",
	CmdEndQueryEXT - firstCommand:                              "EndQueryEXT",
	CmdFenceSync - firstCommand:                                "FenceSync",
	CmdFinish - firstCommand:                                   "Finish",
	CmdFlush - firstCommand:                                    "Flush",
	CmdFramebufferRenderbuffer - firstCommand:                  "FramebufferRenderbuffer",
	CmdFramebufferTexture2D - firstCommand:                     "FramebufferTexture2D",
	CmdFrontFace - firstCommand:                                "FrontFace",
	CmdGenBuffersImmediate - firstCommand:                      "GenBuffersImmediate",
	CmdGenFramebuffersImmediate - firstCommand:                 "GenFramebuffersImmediate",
	CmdGenQueriesEXTImmediate - firstCommand:                   "GenQueriesEXTImmediate",
	CmdGenRenderbuffersImmediate - firstCommand:                "GenRenderbuffersImmediate",
	CmdGenSamplersImmediate - firstCommand:                     "GenSamplersImmediate",
	CmdGenTexturesImmediate - firstCommand:                     "GenTexturesImmediate",
	CmdGenTransformFeedbacksImmediate - firstCommand:           "GenTransformFeedbacksImmediate",
	CmdGenVertexArraysOESImmediate - firstCommand:              "GenVertexArraysOESImmediate",
	CmdGenerateMipmap - firstCommand:                           "GenerateMipmap",
	CmdGetActiveAttrib - firstCommand:                          "GetActiveAttrib",
	CmdGetActiveUniform - firstCommand:                         "GetActiveUniform",
	CmdGetAttribLocation - firstCommand:                        "GetAttribLocation",
	CmdGetBooleanv - firstCommand:                              "GetBooleanv",
	CmdGetError - firstCommand:                                 "GetError",
	CmdGetIntegerv - firstCommand:                              "GetIntegerv",
	CmdGetProgramInfoLog - firstCommand:                        "GetProgramInfoLog",
	CmdGetProgramiv - firstCommand:                             "GetProgramiv",
	CmdGetShaderInfoLog - firstCommand:                         "GetShaderInfoLog",
	CmdGetShaderiv - firstCommand:                              "GetShaderiv",
	CmdGetUniformLocation - firstCommand:                       "GetUniformLocation",
	CmdHint - firstCommand:                                     "Hint",
	CmdInsertFenceSyncCHROMIUM - firstCommand:                  "InsertFenceSyncCHROMIUM",
	CmdIsBuffer - firstCommand:                                 "IsBuffer",
	CmdIsEnabled - firstCommand:                                "IsEnabled",
	CmdIsFramebuffer - firstCommand:                            "IsFramebuffer",
	CmdIsProgram - firstCommand:                                "IsProgram",
	CmdIsRenderbuffer - firstCommand:                           "IsRenderbuffer",
	CmdIsShader - firstCommand:                                 "IsShader",
	CmdIsTexture - firstCommand:                                "IsTexture",
	CmdLineWidth - firstCommand:                                "LineWidth",
	CmdLinkProgram - firstCommand:                              "LinkProgram",
	CmdLoseContextCHROMIUM - firstCommand:                      "LoseContextCHROMIUM",
	CmdPixelStorei - firstCommand:                              "PixelStorei",
	CmdPolygonOffset - firstCommand:                            "PolygonOffset",
	CmdProduceTextureDirectCHROMIUMImmediate - firstCommand:    "ProduceTextureDirectCHROMIUMImmediate",
	CmdQueryCounterEXT - firstCommand:                          "QueryCounterEXT",
	CmdReadPixels - firstCommand:                               "ReadPixels",
	CmdRenderbufferStorage - firstCommand:                      "RenderbufferStorage",
	CmdRenderbufferStorageMultisample - firstCommand:           "RenderbufferStorageMultisample",
	CmdResizeCHROMIUM - firstCommand:                           "ResizeCHROMIUM",
	CmdReturnFrontBufferCHROMIUMImmediate - firstCommand:       "ReturnFrontBufferCHROMIUMImmediate",
	CmdSampleCoverage - firstCommand:                           "SampleCoverage",
	CmdSamplerParameteri - firstCommand:                        "SamplerParameteri",
	CmdScissor - firstCommand:                                  "Scissor",
	CmdShaderSourceBucket - firstCommand:                       "ShaderSourceBucket",
	CmdStencilFuncSeparate - firstCommand:                      "StencilFuncSeparate",
	CmdStencilMaskSeparate - firstCommand:                      "StencilMaskSeparate",
	CmdStencilOpSeparate - firstCommand:                        "StencilOpSeparate",
	CmdSwapBuffers - firstCommand:                              "SwapBuffers",
	CmdTakeFrontBufferCHROMIUMImmediate - firstCommand:         "TakeFrontBufferCHROMIUMImmediate",
	CmdTexImage2D - firstCommand:                               "TexImage2D",
	CmdTexParameterf - firstCommand:                            "TexParameterf",
	CmdTexParameteri - firstCommand:                            "TexParameteri",
	CmdTexStorage2DEXT - firstCommand:                          "TexStorage2DEXT",
	CmdTexSubImage2D - firstCommand:                            "TexSubImage2D",
	CmdUniform1f - firstCommand:                                "Uniform1f",
	CmdUniform1i - firstCommand:                                "Uniform1i",
	CmdUniform1ivImmediate - firstCommand:                      "Uniform1ivImmediate",
	CmdUniform4f - firstCommand:                                "Uniform4f",
	CmdUniform4fvImmediate - firstCommand:                      "Uniform4fvImmediate",
	CmdUniform4i - firstCommand:                                "Uniform4i",
	CmdUniformMatrix4fvImmediate - firstCommand:                "UniformMatrix4fvImmediate",
	CmdUseProgram - firstCommand:                               "UseProgram",
	CmdValidateProgram - firstCommand:                          "ValidateProgram",
	CmdVertexAttrib4f - firstCommand:                           "VertexAttrib4f",
	CmdVertexAttribDivisorANGLE - firstCommand:                 "VertexAttribDivisorANGLE",
	CmdVertexAttribI4i - firstCommand:                          "VertexAttribI4i",
	CmdVertexAttribI4ui - firstCommand:                         "VertexAttribI4ui",
	CmdVertexAttribIPointer - firstCommand:                     "VertexAttribIPointer",
	CmdVertexAttribPointer - firstCommand:                      "VertexAttribPointer",
	CmdViewport - firstCommand:                                 "Viewport",
	CmdWaitSync - firstCommand:                                 "WaitSync",
	CmdWaitSyncTokenCHROMIUM - firstCommand:                    "WaitSyncTokenCHROMIUM",
}

// CommandName returns the name of command id, or "" if id is unknown.
func CommandName(id uint32) string {
	if id < cmdbuf.NumCommonCommands {
		return cmdbuf.CommonName(id)
	}
	if id -= firstCommand; id < numCommands {
		return commandNames[id]
	}
	return ""
}

// ArgCount returns the declared argument count and arity flags of id.
func ArgCount(id uint32) (count uint32, flags cmdbuf.ArgFlags, ok bool) {
	if id < firstCommand || id >= lastCommand {
		return 0, cmdbuf.Fixed, false
	}
	info := &commandInfos[id-firstCommand]
	return info.argCount, info.argFlags, true
}
